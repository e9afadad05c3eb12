package annotate

import "unicode"

// Span is a half open [Start, End) interval of rune offsets.
type Span struct {
	Start int
	End   int
}

// Len returns the number of runes covered.
func (s Span) Len() int { return s.End - s.Start }

// MinMatchLen is the shortest term that gets highlighted. Single characters
// would light up most of a snippet.
const MinMatchLen = 2

// Matches returns every case-insensitive occurrence of term in text, scanning
// left to right and resuming after the end of each hit, so spans never overlap.
func Matches(text, term string) []Span {
	needle := foldRunes(term)
	if len(needle) < MinMatchLen {
		return nil
	}
	hay := foldRunes(text)

	var spans []Span
	for start := 0; start+len(needle) <= len(hay); {
		i := indexRunes(hay[start:], needle)
		if i < 0 {
			break
		}
		at := start + i
		spans = append(spans, Span{at, at + len(needle)})
		start = at + len(needle)
	}
	return spans
}

// foldRunes lower cases rune by rune so offsets in the result line up with
// offsets in the source text.
func foldRunes(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}

func indexRunes(hay, needle []rune) int {
outer:
	for i := 0; i+len(needle) <= len(hay); i++ {
		for j, r := range needle {
			if hay[i+j] != r {
				continue outer
			}
		}
		return i
	}
	return -1
}
