// Package session keeps the browsing state of one user: the category being
// viewed, the active search and the cursor over its results. Every query
// is a function of explicit parameters held here, and every mutation goes
// through a TopicHandle, is saved, and refreshes the active query.
//
// Session is safe for concurrent use. The TUI runs searches from command
// goroutines, so each operation, including mutate-then-requery sequences,
// holds a single lock.
package session

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/noelzubin/cmdref/annotate"
	"github.com/noelzubin/cmdref/search"
	"github.com/noelzubin/cmdref/store"
)

// PreviewLines is how much code a result card shows.
const PreviewLines = 5

// Options are the starting preferences of a session.
type Options struct {
	Category  string // category shown first, the first one when empty or unknown
	SearchAll bool   // search every category instead of the current one
	Exact     bool   // whole word matching
	Logger    *log.Logger
}

// Session is the state behind one browser window.
type Session struct {
	mu       sync.Mutex
	store    *store.Store
	backend  store.Backend
	searcher search.Searcher
	logger   *log.Logger

	category  string
	searchAll bool
	exact     bool
	term      string
	results   search.ResultSet
	nav       *search.Navigator
}

// New starts a session over st, saving through backend after each mutation.
// A nil backend keeps changes in memory only.
func New(st *store.Store, backend store.Backend, searcher search.Searcher, opts Options) *Session {
	if searcher == nil {
		searcher = search.NewScanner()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		store:     st,
		backend:   backend,
		searcher:  searcher,
		logger:    logger,
		category:  opts.Category,
		searchAll: opts.SearchAll,
		exact:     opts.Exact,
	}
	if !st.HasCategory(s.category) {
		s.category = s.firstCategory()
	}
	s.refresh()
	return s
}

func (s *Session) firstCategory() string {
	if cats := s.store.Categories(); len(cats) > 0 {
		return cats[0]
	}
	return ""
}

// View is a snapshot of what should be on screen.
type View struct {
	Category  string           // category being browsed
	Term      string           // active search term, empty when browsing
	SearchAll bool             // preference for new searches
	Exact     bool             // preference for new searches
	Results   search.ResultSet // topics to show, in display order
	Index     int              // navigator index, -1 before the first move
	Counter   string           // "Result i of N" for cross-category searches
}

// Searching reports whether the view shows search results rather than the
// plain listing of a category.
func (v View) Searching() bool { return v.Term != "" }

// View returns the current state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (s *Session) view() View {
	v := View{
		Category:  s.category,
		Term:      s.term,
		SearchAll: s.searchAll,
		Exact:     s.exact,
		Results:   s.results,
		Index:     s.nav.Index(),
	}
	if v.Searching() && s.results.Query.Scope.All() {
		v.Counter = s.nav.Counter()
	}
	return v
}

// Categories returns the category names in store order.
func (s *Session) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Categories()
}

// Search runs term with the current preferences. A blank term clears the
// search instead.
func (s *Session) Search(term string) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.term = strings.TrimSpace(term)
	s.refresh()
	return s.view()
}

// Clear drops the active search and goes back to the category listing.
func (s *Session) Clear() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.term = ""
	s.refresh()
	return s.view()
}

// SetSearchAll switches between searching every category and the current one.
func (s *Session) SetSearchAll(all bool) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchAll = all
	s.refresh()
	return s.view()
}

// SetExact switches between whole word and substring matching.
func (s *Session) SetExact(exact bool) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exact = exact
	s.refresh()
	return s.view()
}

// SelectCategory changes the browsed category and reruns the active search.
func (s *Session) SelectCategory(name string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.store.HasCategory(name) {
		return s.view(), fmt.Errorf("category %q: %w", name, store.ErrNotFound)
	}
	s.category = name
	s.refresh()
	return s.view(), nil
}

// GoTo opens the category of a search result filtered by the active term.
func (s *Session) GoTo(r search.Result) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.store.HasCategory(r.Category) {
		return s.view(), fmt.Errorf("category %q: %w", r.Category, store.ErrNotFound)
	}
	s.category = r.Category
	s.run(search.Query{Term: s.term, Scope: search.SingleCategory(r.Category), Exact: s.exact})
	return s.view(), nil
}

// Next moves the cursor to the next result, wrapping around.
func (s *Session) Next() (search.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.Next()
	return s.nav.Current()
}

// Previous moves the cursor to the previous result, wrapping around.
func (s *Session) Previous() (search.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.Previous()
	return s.nav.Current()
}

// refresh reruns whatever is on screen against the current store.
func (s *Session) refresh() {
	if s.term == "" {
		s.run(search.Query{Scope: search.SingleCategory(s.category)})
		return
	}
	scope := search.SingleCategory(s.category)
	if s.searchAll {
		scope = search.AllCategories()
	}
	s.run(search.Query{Term: s.term, Scope: scope, Exact: s.exact})
}

func (s *Session) run(q search.Query) {
	rs, err := s.searcher.Search(s.store, q)
	if err != nil {
		s.logger.Error("search failed, falling back to scan", "term", q.Term, "error", err)
		rs = search.Scan(s.store, q)
	}
	s.results = rs
	s.nav = search.NewNavigator(rs)

	if q.Term != "" {
		s.logger.Debug("search", "term", q.Term, "scope", q.Scope, "exact", q.Exact, "hits", rs.Len())
	}
}

// Listing returns every topic of a category without touching the view.
func (s *Session) Listing(category string) search.ResultSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return search.Listing(s.store, category)
}

// Topic returns the current contents of a topic.
func (s *Session) Topic(h store.TopicHandle) (store.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Topic(h)
}

// Render annotates one field of a topic with the active search term. Only
// notes carry user styles.
func (s *Session) Render(h store.TopicHandle, f store.Field) ([]annotate.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.store.Topic(h)
	if err != nil {
		return nil, err
	}
	var styles []annotate.StyleRange
	if f == store.FieldNotes {
		styles = t.Styles
	}
	return annotate.Resolve(t.Get(f), s.term, styles), nil
}

// RenderPreview annotates the code preview of a result card.
func (s *Session) RenderPreview(r search.Result) []annotate.Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	return annotate.Resolve(r.Topic.Preview(PreviewLines), s.term, nil)
}
