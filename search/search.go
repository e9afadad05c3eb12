package search

import (
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/noelzubin/cmdref/store"
)

// Scope selects the categories a query runs over.
type Scope struct {
	Category string // empty means every category
}

// AllCategories spans the whole corpus.
func AllCategories() Scope { return Scope{} }

// SingleCategory limits a query to one category.
func SingleCategory(name string) Scope { return Scope{Category: name} }

// All reports whether the scope spans every category.
func (s Scope) All() bool { return s.Category == "" }

func (s Scope) String() string {
	if s.All() {
		return "all"
	}
	return s.Category
}

// Query is everything a search depends on besides the store itself.
type Query struct {
	Term  string
	Scope Scope
	Exact bool // whole word instead of substring
}

// Result is one matching topic.
type Result struct {
	Category string
	Title    string
	Topic    store.Topic // snapshot taken at query time
	Revision uint64      // store revision the snapshot belongs to
}

// Handle addresses the live topic behind the result.
func (r Result) Handle() store.TopicHandle {
	return store.TopicHandle{Category: r.Category, Title: r.Title}
}

// ResultSet is the ordered outcome of a query.
type ResultSet struct {
	Query    Query
	Results  []Result
	Revision uint64
}

// Len returns the number of results.
func (rs ResultSet) Len() int { return len(rs.Results) }

// Stale reports whether s changed after the query ran. Stale results should
// be re-queried before acting on them.
func (rs ResultSet) Stale(s *store.Store) bool { return s.Revision() != rs.Revision }

// The searcher that runs queries against a store.
type Searcher interface {
	Search(s *store.Store, q Query) (ResultSet, error) // Run q against the current contents of s.
}

// SearchableText is what a topic is matched against: all searchable fields
// joined by spaces and lowercased.
func SearchableText(title string, t store.Topic) string {
	return strings.ToLower(strings.Join([]string{title, t.Code, t.Verification, t.Example, t.Notes}, " "))
}

// Matcher decides whether searchable text matches a term.
type Matcher struct {
	term  string
	exact *regexp2.Regexp
}

// NewMatcher prepares term for matching. In exact mode the term has to sit on
// word boundaries; its characters are escaped so any input is accepted.
func NewMatcher(term string, exact bool) Matcher {
	m := Matcher{term: strings.ToLower(term)}
	if exact && m.term != "" {
		m.exact = regexp2.MustCompile(`\b`+regexp2.Escape(m.term)+`\b`, regexp2.None)
	}
	return m
}

// Match tests lowercased searchable text.
func (m Matcher) Match(text string) bool {
	if m.term == "" {
		return true
	}
	if m.exact != nil {
		ok, err := m.exact.MatchString(text)
		return err == nil && ok
	}
	return strings.Contains(text, m.term)
}
