package search

import (
	"sort"
	"strings"

	"github.com/noelzubin/cmdref/store"
	"github.com/samber/lo"
)

// Scanner answers queries by scanning the whole store each time. The corpus
// is small, so there is no index to maintain.
type Scanner struct{}

func NewScanner() *Scanner {
	return &Scanner{}
}

// Search never fails; the error is there to satisfy Searcher.
func (sc *Scanner) Search(s *store.Store, q Query) (ResultSet, error) {
	return Scan(s, q), nil
}

// Scan runs q over s. A single category lists its topics sorted by title;
// all categories list them in store order, category by category. An empty
// term keeps everything in scope.
func Scan(s *store.Store, q Query) ResultSet {
	m := NewMatcher(strings.TrimSpace(q.Term), q.Exact)
	rs := ResultSet{Query: q, Revision: s.Revision()}
	for _, c := range Candidates(s, q.Scope) {
		if m.Match(SearchableText(c.Title, c.Topic)) {
			rs.Results = append(rs.Results, c)
		}
	}
	return rs
}

// Candidates returns every topic in scope, in scope order, as results.
func Candidates(s *store.Store, scope Scope) []Result {
	rev := s.Revision()
	toResult := func(category string) func(store.Topic, int) Result {
		return func(t store.Topic, _ int) Result {
			return Result{Category: category, Title: t.Title, Topic: t, Revision: rev}
		}
	}

	if !scope.All() {
		topics := s.Topics(scope.Category)
		sort.SliceStable(topics, func(i, j int) bool { return topics[i].Title < topics[j].Title })
		return lo.Map(topics, toResult(scope.Category))
	}

	var out []Result
	for _, c := range s.Categories() {
		out = append(out, lo.Map(s.Topics(c), toResult(c))...)
	}
	return out
}

// Listing is the unfiltered view of one category, sorted by title.
func Listing(s *store.Store, category string) ResultSet {
	return Scan(s, Query{Scope: SingleCategory(category)})
}
