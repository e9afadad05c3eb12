// Package store holds the reference corpus in memory: an ordered set of
// categories, each an ordered set of topics keyed by title.
//
// Order matters. Categories and topics keep the position they were first
// inserted at; overwriting a topic or renaming a category does not move it.
// Every mutation bumps Revision so holders of query results can tell they
// are looking at an older corpus.
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/noelzubin/cmdref/annotate"
	"github.com/samber/lo"
)

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid")
	ErrExists   = errors.New("already exists")
)

// NoExample is shown when a topic has no example text.
const NoExample = "No example provided."

// Field names one editable text field of a topic.
type Field string

const (
	FieldCode         Field = "code"
	FieldVerification Field = "verification"
	FieldExample      Field = "example"
	FieldNotes        Field = "notes"
)

// Fields lists the editable fields in display order.
var Fields = []Field{FieldCode, FieldVerification, FieldExample, FieldNotes}

// ParseField validates a field name.
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("field %q: %w", s, ErrInvalid)
}

// Topic is a single reference entry.
type Topic struct {
	Title        string                // lookup key within its category
	Code         string                // required
	Verification string                // optional
	Example      string                // optional
	Desc         string                // legacy copy of Example, kept but never searched
	Notes        string                // user editable
	Styles       []annotate.StyleRange // inline styles over Notes
}

// Get returns the text of a field.
func (t Topic) Get(f Field) string {
	switch f {
	case FieldCode:
		return t.Code
	case FieldVerification:
		return t.Verification
	case FieldExample:
		return t.Example
	case FieldNotes:
		return t.Notes
	}
	return ""
}

// ExampleText returns the example with the usual placeholder when empty.
func (t Topic) ExampleText() string {
	if t.Example == "" {
		return NoExample
	}
	return t.Example
}

// Preview is the first lines of the code followed by an ellipsis.
func (t Topic) Preview(lines int) string {
	parts := strings.Split(t.Code, "\n")
	if len(parts) > lines {
		parts = parts[:lines]
	}
	return strings.Join(parts, "\n") + "..."
}

func (t Topic) clone() Topic {
	t.Styles = append([]annotate.StyleRange(nil), t.Styles...)
	return t
}

// TopicHandle identifies a topic for mutation.
type TopicHandle struct {
	Category string
	Title    string
}

func (h TopicHandle) String() string {
	return fmt.Sprintf("[%s] %s", h.Category, h.Title)
}

// Category is a named, ordered group of topics.
type Category struct {
	Name   string
	topics []*Topic
	index  map[string]int
}

func newCategory(name string) *Category {
	return &Category{Name: name, index: map[string]int{}}
}

// Len returns the number of topics.
func (c *Category) Len() int { return len(c.topics) }

func (c *Category) put(t Topic) {
	if i, ok := c.index[t.Title]; ok {
		c.topics[i] = &t
		return
	}
	c.index[t.Title] = len(c.topics)
	c.topics = append(c.topics, &t)
}

func (c *Category) remove(title string) bool {
	i, ok := c.index[title]
	if !ok {
		return false
	}
	c.topics = append(c.topics[:i], c.topics[i+1:]...)
	delete(c.index, title)
	for j := i; j < len(c.topics); j++ {
		c.index[c.topics[j].Title] = j
	}
	return true
}

// Store is the in-memory corpus.
type Store struct {
	categories []*Category
	byName     map[string]*Category
	revision   uint64
}

// New returns an empty store.
func New() *Store {
	return &Store{byName: map[string]*Category{}}
}

// Revision increases on every mutation.
func (s *Store) Revision() uint64 { return s.revision }

// Categories returns category names in insertion order.
func (s *Store) Categories() []string {
	return lo.Map(s.categories, func(c *Category, _ int) string { return c.Name })
}

// HasCategory reports whether the category exists.
func (s *Store) HasCategory(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Len returns the total number of topics.
func (s *Store) Len() int {
	return lo.SumBy(s.categories, func(c *Category) int { return c.Len() })
}

// Topics returns copies of the topics of a category in insertion order.
func (s *Store) Topics(category string) []Topic {
	c, ok := s.byName[category]
	if !ok {
		return nil
	}
	return lo.Map(c.topics, func(t *Topic, _ int) Topic { return t.clone() })
}

// Each calls fn for every topic, categories and topics in insertion order,
// until fn returns false.
func (s *Store) Each(fn func(category string, t Topic) bool) {
	for _, c := range s.categories {
		for _, t := range c.topics {
			if !fn(c.Name, t.clone()) {
				return
			}
		}
	}
}

// Topic returns a copy of the topic behind h.
func (s *Store) Topic(h TopicHandle) (Topic, error) {
	t, err := s.lookup(h)
	if err != nil {
		return Topic{}, err
	}
	return t.clone(), nil
}

func (s *Store) lookup(h TopicHandle) (*Topic, error) {
	c, ok := s.byName[h.Category]
	if !ok {
		return nil, fmt.Errorf("category %q: %w", h.Category, ErrNotFound)
	}
	i, ok := c.index[h.Title]
	if !ok {
		return nil, fmt.Errorf("topic %s: %w", h, ErrNotFound)
	}
	return c.topics[i], nil
}

// AddCategory creates an empty category. Adding an existing one is a no-op.
func (s *Store) AddCategory(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("empty category name: %w", ErrInvalid)
	}
	s.category(name)
	return nil
}

func (s *Store) category(name string) *Category {
	if c, ok := s.byName[name]; ok {
		return c
	}
	c := newCategory(name)
	s.categories = append(s.categories, c)
	s.byName[name] = c
	s.revision++
	return c
}

// Put inserts t under category, creating the category when needed. A topic
// with the same title is overwritten in place. Title and code are required.
func (s *Store) Put(category string, t Topic) (TopicHandle, error) {
	if strings.TrimSpace(category) == "" {
		return TopicHandle{}, fmt.Errorf("empty category name: %w", ErrInvalid)
	}
	if t.Title == "" || t.Code == "" {
		return TopicHandle{}, fmt.Errorf("title and code are required: %w", ErrInvalid)
	}
	t.Styles = annotate.Clamp(t.Styles, len([]rune(t.Notes)))
	s.category(category).put(t.clone())
	s.revision++
	return TopicHandle{category, t.Title}, nil
}

// Restore inserts a topic read back from a backend. Unlike Put it accepts
// topics with empty code, which older files may contain.
func (s *Store) Restore(category string, t Topic) error {
	if t.Title == "" {
		return fmt.Errorf("topic without title in %q: %w", category, ErrInvalid)
	}
	if strings.TrimSpace(category) == "" {
		return fmt.Errorf("empty category name: %w", ErrInvalid)
	}
	t.Styles = annotate.Clamp(t.Styles, len([]rune(t.Notes)))
	s.category(category).put(t.clone())
	s.revision++
	return nil
}

// SetField replaces one field of a topic. Notes style ranges are dropped when
// the notes text changes, since their offsets no longer line up; use
// SetNotes to carry ranges across an edit.
func (s *Store) SetField(h TopicHandle, f Field, value string) error {
	t, err := s.lookup(h)
	if err != nil {
		return err
	}
	switch f {
	case FieldCode:
		if value == "" {
			return fmt.Errorf("code of %s cannot be empty: %w", h, ErrInvalid)
		}
		t.Code = value
	case FieldVerification:
		t.Verification = value
	case FieldExample:
		t.Example = value
		t.Desc = value
	case FieldNotes:
		if t.Notes != value {
			t.Styles = nil
		}
		t.Notes = value
	default:
		return fmt.Errorf("field %q: %w", f, ErrInvalid)
	}
	s.revision++
	return nil
}

// SetNotes replaces notes text together with its style ranges.
func (s *Store) SetNotes(h TopicHandle, notes string, styles []annotate.StyleRange) error {
	t, err := s.lookup(h)
	if err != nil {
		return err
	}
	t.Notes = notes
	t.Styles = annotate.Clamp(styles, len([]rune(notes)))
	s.revision++
	return nil
}

// ToggleStyle toggles tag over [start, end) of a topic's notes.
func (s *Store) ToggleStyle(h TopicHandle, start, end int, tag annotate.Tag) error {
	t, err := s.lookup(h)
	if err != nil {
		return err
	}
	n := len([]rune(t.Notes))
	if start < 0 || end > n || start > end {
		return fmt.Errorf("selection [%d,%d) outside notes of %s (%d runes): %w", start, end, h, n, ErrInvalid)
	}
	if start == end {
		return nil
	}
	t.Styles = annotate.Toggle(t.Styles, start, end, tag)
	s.revision++
	return nil
}

// Delete removes a topic. Its category stays, even when left empty.
func (s *Store) Delete(h TopicHandle) error {
	c, ok := s.byName[h.Category]
	if !ok {
		return fmt.Errorf("category %q: %w", h.Category, ErrNotFound)
	}
	if !c.remove(h.Title) {
		return fmt.Errorf("topic %s: %w", h, ErrNotFound)
	}
	s.revision++
	return nil
}

// DeleteCategory removes a category and every topic in it.
func (s *Store) DeleteCategory(name string) error {
	if _, ok := s.byName[name]; !ok {
		return fmt.Errorf("category %q: %w", name, ErrNotFound)
	}
	for i, c := range s.categories {
		if c.Name == name {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			break
		}
	}
	delete(s.byName, name)
	s.revision++
	return nil
}

// RenameCategory changes a category's key, keeping its position and topics.
func (s *Store) RenameCategory(from, to string) error {
	c, ok := s.byName[from]
	if !ok {
		return fmt.Errorf("category %q: %w", from, ErrNotFound)
	}
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("empty category name: %w", ErrInvalid)
	}
	if from == to {
		return nil
	}
	if _, ok := s.byName[to]; ok {
		return fmt.Errorf("category %q: %w", to, ErrExists)
	}
	c.Name = to
	delete(s.byName, from)
	s.byName[to] = c
	s.revision++
	return nil
}
