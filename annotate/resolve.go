package annotate

import "sort"

// Run is a maximal stretch of text sharing one rendering decision.
type Run struct {
	Span
	Text   string
	Syntax SyntaxTag // line class, None outside tagged lines
	Match  bool      // inside an occurrence of the active search term
	Styles []Tag     // user styles, notes only
}

// Resolve merges the derived syntax and match spans of text with its
// persisted style ranges. Everything derived is rebuilt on each call; styles
// are only read.
func Resolve(text, term string, styles []StyleRange) []Run {
	rs := []rune(text)
	if len(rs) == 0 {
		return nil
	}
	syntax := SyntaxSpans(text)
	matches := Matches(text, term)
	styles = Clamp(styles, len(rs))

	cuts := map[int]struct{}{0: {}, len(rs): {}}
	for _, s := range syntax {
		cuts[s.Start], cuts[s.End] = struct{}{}, struct{}{}
	}
	for _, m := range matches {
		cuts[m.Start], cuts[m.End] = struct{}{}, struct{}{}
	}
	for _, r := range styles {
		cuts[r.Start], cuts[r.End] = struct{}{}, struct{}{}
	}
	bounds := make([]int, 0, len(cuts))
	for c := range cuts {
		bounds = append(bounds, c)
	}
	sort.Ints(bounds)

	var runs []Run
	for i := 0; i+1 < len(bounds); i++ {
		start, end := bounds[i], bounds[i+1]
		run := Run{
			Span:   Span{start, end},
			Syntax: syntaxAt(syntax, start),
			Match:  inSpans(matches, start),
			Styles: TagsAt(styles, start),
		}
		if n := len(runs); n > 0 && sameDecision(runs[n-1], run) {
			runs[n-1].End = end
			continue
		}
		runs = append(runs, run)
	}
	for i := range runs {
		runs[i].Text = string(rs[runs[i].Start:runs[i].End])
	}
	return runs
}

func syntaxAt(spans []SyntaxSpan, i int) SyntaxTag {
	for _, s := range spans {
		if s.Start <= i && i < s.End {
			return s.Tag
		}
	}
	return None
}

func inSpans(spans []Span, i int) bool {
	for _, s := range spans {
		if s.Start <= i && i < s.End {
			return true
		}
	}
	return false
}

func sameDecision(a, b Run) bool {
	if a.Syntax != b.Syntax || a.Match != b.Match || len(a.Styles) != len(b.Styles) {
		return false
	}
	for _, t := range a.Styles {
		found := false
		for _, u := range b.Styles {
			if t == u {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
