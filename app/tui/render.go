package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/noelzubin/cmdref/annotate"
	"github.com/noelzubin/cmdref/store"
)

var (
	syntaxColors = map[annotate.SyntaxTag]lipgloss.Color{
		annotate.Comment:      lipgloss.Color("#6c757d"),
		annotate.Keyword:      lipgloss.Color("#FFB703"),
		annotate.ConfigHeader: lipgloss.Color("#FF6B6B"),
		annotate.VerifyHeader: lipgloss.Color("#4ECDC4"),
	}

	namedColors = map[string]lipgloss.Color{
		"red":    lipgloss.Color("#ff6b6b"),
		"blue":   lipgloss.Color("#4d9fff"),
		"green":  lipgloss.Color("#51cf66"),
		"yellow": lipgloss.Color("#ffd43b"),
		"purple": lipgloss.Color("#cc5de8"),
	}

	codeBackground  = lipgloss.Color("#2d2d2d")
	codeForeground  = lipgloss.Color("#f8f8f2")
	matchBackground = lipgloss.Color("#FFE66D")
	matchForeground = lipgloss.Color("#000000")

	SectionStyle = lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1)
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1)
)

// runStyle turns one resolved run into a lipgloss style. Syntax colours go
// first, user styles override them and a search match overrides everything.
// Alignment has no terminal rendering; sizes map to bold and faint.
func runStyle(r annotate.Run) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c, ok := syntaxColors[r.Syntax]; ok {
		s = s.Foreground(c)
		if r.Syntax == annotate.ConfigHeader || r.Syntax == annotate.VerifyHeader {
			s = s.Bold(true)
		}
	}

	for _, tag := range r.Styles {
		switch tag {
		case annotate.Bold:
			s = s.Bold(true)
		case annotate.Italic:
			s = s.Italic(true)
		case annotate.Underline:
			s = s.Underline(true)
		case annotate.Code:
			s = s.Background(codeBackground).Foreground(codeForeground)
		}
		switch tag.Kind() {
		case "color":
			if c, ok := namedColors[tag.Value()]; ok {
				s = s.Foreground(c)
			}
		case "size":
			switch tag.Value() {
			case "large":
				s = s.Bold(true)
			case "small":
				s = s.Faint(true)
			}
		}
	}

	if r.Match {
		s = s.Background(matchBackground).Foreground(matchForeground)
	}
	return s
}

// RenderRuns renders resolved runs as styled terminal text. Styles are
// applied per line so that newlines stay outside escape sequences.
func RenderRuns(runs []annotate.Run) string {
	var b strings.Builder
	for _, r := range runs {
		style := runStyle(r)
		for i, line := range strings.Split(r.Text, "\n") {
			if i > 0 {
				b.WriteByte('\n')
			}
			if line != "" {
				b.WriteString(style.Render(line))
			}
		}
	}
	return b.String()
}

// Renderer annotates one field of a topic.
type Renderer interface {
	Render(h store.TopicHandle, f store.Field) ([]annotate.Run, error)
}

var sectionNames = map[store.Field]string{
	store.FieldCode:         "Code",
	store.FieldVerification: "Verification",
	store.FieldExample:      "Example",
	store.FieldNotes:        "Notes",
}

// RenderTopic lays out every field of a topic with its annotations.
func RenderTopic(r Renderer, h store.TopicHandle, t store.Topic) (string, error) {
	parts := []string{TitleStyle.Render(t.Title)}
	for _, f := range store.Fields {
		runs, err := r.Render(h, f)
		if err != nil {
			return "", err
		}
		body := RenderRuns(runs)
		switch {
		case f == store.FieldExample && t.Example == "":
			body = lipgloss.NewStyle().Faint(true).Render(t.ExampleText())
		case body == "":
			continue
		}
		parts = append(parts, SectionStyle.Render(sectionNames[f]), body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...), nil
}
