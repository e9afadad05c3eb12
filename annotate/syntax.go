package annotate

import "strings"

// SyntaxTag is the class a single line of snippet text falls into.
type SyntaxTag int

const (
	None SyntaxTag = iota
	Comment
	ConfigHeader
	VerifyHeader
	Keyword
)

func (t SyntaxTag) String() string {
	switch t {
	case Comment:
		return "comment"
	case ConfigHeader:
		return "config_header"
	case VerifyHeader:
		return "verify_header"
	case Keyword:
		return "keyword"
	}
	return "none"
}

var (
	configMarkers   = []string{"=== CONFIGURATION ===", "--- CONFIGURATION ---"}
	verifyMarkers   = []string{"=== VERIFICATION ===", "--- VERIFICATION ---"}
	commentPrefixes = []string{"!", "#", "#!"}

	// operational verbs that mark a line as a runnable command.
	keywords = []string{
		"show ", "debug ", "clear ", "ping", "traceroute", "ssh",
		"telnet", "nmap", "curl", "wget", "systemctl", "docker",
	}
)

// LineTag is a tagged line of a classified text block.
type LineTag struct {
	Line int       // zero based line index
	Tag  SyntaxTag // the class of the line, never None
}

// ClassifyLine returns the class of a single line. Header markers win over
// the comment prefix, which wins over keywords.
func ClassifyLine(line string) SyntaxTag {
	if containsAny(line, configMarkers) {
		return ConfigHeader
	}
	if containsAny(line, verifyMarkers) {
		return VerifyHeader
	}

	trimmed := strings.TrimSpace(line)
	for _, p := range commentPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return Comment
		}
	}

	if containsAny(strings.ToLower(line), keywords) {
		return Keyword
	}
	return None
}

// Classify tags every line of text. Untagged lines are left out.
func Classify(text string) []LineTag {
	var tags []LineTag
	for i, line := range strings.Split(text, "\n") {
		if tag := ClassifyLine(line); tag != None {
			tags = append(tags, LineTag{Line: i, Tag: tag})
		}
	}
	return tags
}

// SyntaxSpan covers one tagged line, in rune offsets, without its newline.
type SyntaxSpan struct {
	Span
	Tag SyntaxTag
}

// SyntaxSpans converts the classification of text into rune offset spans.
func SyntaxSpans(text string) []SyntaxSpan {
	var spans []SyntaxSpan
	offset := 0
	for _, line := range strings.Split(text, "\n") {
		n := len([]rune(line))
		if tag := ClassifyLine(line); tag != None && n > 0 {
			spans = append(spans, SyntaxSpan{Span{offset, offset + n}, tag})
		}
		offset += n + 1
	}
	return spans
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
