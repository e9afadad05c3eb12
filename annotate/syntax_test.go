package annotate_test

import (
	"testing"

	"github.com/noelzubin/cmdref/annotate"
	"github.com/stretchr/testify/assert"
)

func TestClassifyLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want annotate.SyntaxTag
	}{
		{"config header", "=== CONFIGURATION ===", annotate.ConfigHeader},
		{"dashed config header", "--- CONFIGURATION ---", annotate.ConfigHeader},
		{"verify header", "=== VERIFICATION ===", annotate.VerifyHeader},
		{"dashed verify header", "  --- VERIFICATION --- ", annotate.VerifyHeader},
		{"header beats comment prefix", "! === CONFIGURATION ===", annotate.ConfigHeader},
		{"bang comment", "! basic switch setup", annotate.Comment},
		{"hash comment", "   # install packages", annotate.Comment},
		{"shebang", "#!/bin/bash", annotate.Comment},
		{"comment beats keyword", "# ping the gateway", annotate.Comment},
		{"show keyword", "Switch# show vlan brief", annotate.Keyword},
		{"keyword is case insensitive", "SYSTEMCTL status sshd", annotate.Keyword},
		{"show needs trailing space", "showvlan", annotate.None},
		{"plain config", "interface g0/1", annotate.None},
		{"empty", "", annotate.None},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, annotate.ClassifyLine(tt.line))
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	text := "! header\nhostname SW1\nshow ip int brief\n\n=== VERIFICATION ==="
	got := annotate.Classify(text)

	assert.Equal(t, []annotate.LineTag{
		{Line: 0, Tag: annotate.Comment},
		{Line: 2, Tag: annotate.Keyword},
		{Line: 4, Tag: annotate.VerifyHeader},
	}, got)

	// recomputing gives the same answer
	assert.Equal(t, got, annotate.Classify(text))
}

func TestSyntaxSpans(t *testing.T) {
	t.Parallel()

	t.Run("offsets are runes and exclude the newline", func(t *testing.T) {
		t.Parallel()
		text := "# é\nip route\nping 8.8.8.8"
		got := annotate.SyntaxSpans(text)
		assert.Equal(t, []annotate.SyntaxSpan{
			{Span: annotate.Span{Start: 0, End: 3}, Tag: annotate.Comment},
			{Span: annotate.Span{Start: 13, End: 25}, Tag: annotate.Keyword},
		}, got)
	})

	t.Run("no tagged lines", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, annotate.SyntaxSpans("vlan 10\n name SALES"))
	})
}

func TestSyntaxTag_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "config_header", annotate.ConfigHeader.String())
	assert.Equal(t, "verify_header", annotate.VerifyHeader.String())
	assert.Equal(t, "comment", annotate.Comment.String())
	assert.Equal(t, "keyword", annotate.Keyword.String())
	assert.Equal(t, "none", annotate.None.String())
}
