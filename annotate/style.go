package annotate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Tag names an inline style applied to a range of notes text.
type Tag string

const (
	Bold      Tag = "bold"
	Italic    Tag = "italic"
	Underline Tag = "underline"
	Code      Tag = "code"
)

var (
	ColorNames = []string{"red", "blue", "green", "yellow", "purple"}
	SizeNames  = []string{"small", "medium", "large"}
	AlignNames = []string{"left", "center", "right"}
)

func Color(name string) Tag { return Tag("color:" + name) }
func Size(name string) Tag  { return Tag("size:" + name) }
func Align(name string) Tag { return Tag("align:" + name) }

// ParseTag validates s as a style tag.
func ParseTag(s string) (Tag, error) {
	switch Tag(s) {
	case Bold, Italic, Underline, Code:
		return Tag(s), nil
	}

	kind, value, ok := strings.Cut(s, ":")
	if ok {
		var allowed []string
		switch kind {
		case "color":
			allowed = ColorNames
		case "size":
			allowed = SizeNames
		case "align":
			allowed = AlignNames
		}
		if lo.Contains(allowed, value) {
			return Tag(s), nil
		}
	}
	return "", fmt.Errorf("unknown style tag %q", s)
}

// Kind is the tag family, e.g. "color" for "color:red".
func (t Tag) Kind() string {
	kind, _, _ := strings.Cut(string(t), ":")
	return kind
}

// Value is the part after the colon, empty for plain tags.
func (t Tag) Value() string {
	_, value, _ := strings.Cut(string(t), ":")
	return value
}

// StyleRange is a persisted inline style over [Start, End) rune offsets.
type StyleRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
	Tag   Tag `json:"tag"`
}

// Toggle applies tag to the selection [start, end). When same-tag ranges
// already cover the whole selection that coverage is removed, otherwise a new
// range is appended. The input slice is never modified.
func Toggle(ranges []StyleRange, start, end int, tag Tag) []StyleRange {
	out := append([]StyleRange(nil), ranges...)
	if start >= end {
		return out
	}

	if !covered(ranges, start, end, tag) {
		return append(out, StyleRange{start, end, tag})
	}

	// a range laid down by the previous toggle comes off whole
	for i, r := range out {
		if r.Tag == tag && r.Start == start && r.End == end {
			return append(out[:i], out[i+1:]...)
		}
	}

	var kept []StyleRange
	for _, r := range out {
		if r.Tag != tag || r.End <= start || r.Start >= end {
			kept = append(kept, r)
			continue
		}
		if r.Start < start {
			kept = append(kept, StyleRange{r.Start, start, tag})
		}
		if r.End > end {
			kept = append(kept, StyleRange{end, r.End, tag})
		}
	}
	return kept
}

// covered reports whether the union of tag ranges spans all of [start, end).
func covered(ranges []StyleRange, start, end int, tag Tag) bool {
	same := lo.Filter(ranges, func(r StyleRange, _ int) bool { return r.Tag == tag })
	sort.Slice(same, func(i, j int) bool { return same[i].Start < same[j].Start })

	pos := start
	for _, r := range same {
		if r.Start > pos {
			break
		}
		if r.End > pos {
			pos = r.End
		}
		if pos >= end {
			return true
		}
	}
	return false
}

// Normalize merges overlapping and adjacent ranges of the same tag and sorts
// the result by tag, then start. Empty ranges are dropped.
func Normalize(ranges []StyleRange) []StyleRange {
	byTag := lo.GroupBy(lo.Filter(ranges, func(r StyleRange, _ int) bool { return r.End > r.Start }),
		func(r StyleRange) Tag { return r.Tag })

	tags := lo.Keys(byTag)
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })

	var out []StyleRange
	for _, tag := range tags {
		group := byTag[tag]
		sort.Slice(group, func(i, j int) bool { return group[i].Start < group[j].Start })
		cur := group[0]
		for _, r := range group[1:] {
			if r.Start <= cur.End {
				if r.End > cur.End {
					cur.End = r.End
				}
				continue
			}
			out = append(out, cur)
			cur = r
		}
		out = append(out, cur)
	}
	return out
}

// Clamp trims ranges to a text of n runes and drops the ones left empty.
func Clamp(ranges []StyleRange, n int) []StyleRange {
	var out []StyleRange
	for _, r := range ranges {
		if r.Start < 0 {
			r.Start = 0
		}
		if r.End > n {
			r.End = n
		}
		if r.End > r.Start {
			out = append(out, r)
		}
	}
	return out
}

// TagsAt returns the distinct tags applied at rune offset i, in first seen order.
func TagsAt(ranges []StyleRange, i int) []Tag {
	var tags []Tag
	for _, r := range ranges {
		if r.Start <= i && i < r.End && !lo.Contains(tags, r.Tag) {
			tags = append(tags, r.Tag)
		}
	}
	return tags
}
