package search_test

import (
	"testing"

	"github.com/noelzubin/cmdref/search"
	"github.com/noelzubin/cmdref/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orderedStore has categories A then B, with A's topics inserted "z" then "a".
func orderedStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New()
	for _, e := range []struct{ category, title, code string }{
		{"A", "z", "show vlan brief"},
		{"A", "a", "show interfaces trunk"},
		{"B", "m", "show ip route"},
	} {
		_, err := s.Put(e.category, store.Topic{Title: e.title, Code: e.code})
		require.NoError(t, err)
	}
	return s
}

func keys(rs search.ResultSet) []string {
	out := make([]string, len(rs.Results))
	for i, r := range rs.Results {
		out[i] = r.Category + "/" + r.Title
	}
	return out
}

func TestScan_Ordering(t *testing.T) {
	t.Parallel()

	s := orderedStore(t)

	t.Run("all categories keep insertion order", func(t *testing.T) {
		t.Parallel()
		rs := search.Scan(s, search.Query{Term: "show", Scope: search.AllCategories()})
		assert.Equal(t, []string{"A/z", "A/a", "B/m"}, keys(rs))
	})

	t.Run("single category sorts by title", func(t *testing.T) {
		t.Parallel()
		rs := search.Scan(s, search.Query{Term: "show", Scope: search.SingleCategory("A")})
		assert.Equal(t, []string{"A/a", "A/z"}, keys(rs))
	})
}

func TestScan_ExactAndFuzzy(t *testing.T) {
	t.Parallel()

	s := store.New()
	_, err := s.Put("A", store.Topic{Title: "plural", Code: "show vlans"})
	require.NoError(t, err)
	_, err = s.Put("A", store.Topic{Title: "upper", Code: "interface VLAN 10"})
	require.NoError(t, err)

	fuzzy := search.Scan(s, search.Query{Term: "vlan", Scope: search.AllCategories()})
	assert.Equal(t, []string{"A/plural", "A/upper"}, keys(fuzzy))

	exact := search.Scan(s, search.Query{Term: "vlan", Scope: search.AllCategories(), Exact: true})
	assert.Equal(t, []string{"A/upper"}, keys(exact))
}

func TestScan_SearchesEveryField(t *testing.T) {
	t.Parallel()

	s := store.New()
	_, err := s.Put("A", store.Topic{Title: "by title", Code: "x"})
	require.NoError(t, err)
	_, err = s.Put("A", store.Topic{Title: "t2", Code: "x", Verification: "by verification"})
	require.NoError(t, err)
	_, err = s.Put("A", store.Topic{Title: "t3", Code: "x", Example: "by example"})
	require.NoError(t, err)
	_, err = s.Put("A", store.Topic{Title: "t4", Code: "x", Notes: "by notes"})
	require.NoError(t, err)
	_, err = s.Put("A", store.Topic{Title: "t5", Code: "x", Desc: "by desc"})
	require.NoError(t, err)

	rs := search.Scan(s, search.Query{Term: "by", Scope: search.AllCategories(), Exact: true})
	assert.Equal(t, []string{"A/by title", "A/t2", "A/t3", "A/t4"}, keys(rs))
}

func TestScan_FieldsAreSpaceSeparated(t *testing.T) {
	t.Parallel()

	s := store.New()
	_, err := s.Put("A", store.Topic{Title: "ssh", Code: "config"})
	require.NoError(t, err)

	assert.Empty(t, search.Scan(s, search.Query{Term: "sshconfig"}).Results)
	assert.Len(t, search.Scan(s, search.Query{Term: "ssh config"}).Results, 1)
	assert.Len(t, search.Scan(s, search.Query{Term: "config", Exact: true}).Results, 1)
}

func TestScan_EdgeCases(t *testing.T) {
	t.Parallel()

	s := orderedStore(t)

	t.Run("empty term lists the whole scope", func(t *testing.T) {
		t.Parallel()
		rs := search.Scan(s, search.Query{Term: "   ", Scope: search.AllCategories()})
		assert.Equal(t, []string{"A/z", "A/a", "B/m"}, keys(rs))

		rs = search.Scan(s, search.Query{Scope: search.SingleCategory("A"), Exact: true})
		assert.Equal(t, []string{"A/a", "A/z"}, keys(rs))
	})

	t.Run("term is trimmed", func(t *testing.T) {
		t.Parallel()
		rs := search.Scan(s, search.Query{Term: "  trunk ", Exact: true})
		assert.Equal(t, []string{"A/a"}, keys(rs))
	})

	t.Run("unknown category", func(t *testing.T) {
		t.Parallel()
		rs := search.Scan(s, search.Query{Term: "show", Scope: search.SingleCategory("nope")})
		assert.Empty(t, rs.Results)
	})

	t.Run("regexp metacharacters are literal in exact mode", func(t *testing.T) {
		t.Parallel()
		for _, term := range []string{"(", "[a-z", "*", "show.*", `\`, "a|b", "$^", "?"} {
			assert.NotPanics(t, func() {
				search.Scan(s, search.Query{Term: term, Exact: true})
			}, term)
		}
		assert.Empty(t, search.Scan(s, search.Query{Term: "show.*", Exact: true}).Results)
	})

	t.Run("case insensitive", func(t *testing.T) {
		t.Parallel()
		rs := search.Scan(s, search.Query{Term: "SHOW IP", Exact: true})
		assert.Equal(t, []string{"B/m"}, keys(rs))
	})

	t.Run("store is not modified", func(t *testing.T) {
		t.Parallel()
		rev := s.Revision()
		search.Scan(s, search.Query{Term: "show"})
		assert.Equal(t, rev, s.Revision())
	})
}

func TestResultSet_Stale(t *testing.T) {
	t.Parallel()

	s := orderedStore(t)
	rs, err := search.NewScanner().Search(s, search.Query{Term: "show"})
	require.NoError(t, err)
	require.Len(t, rs.Results, 3)

	assert.False(t, rs.Stale(s))
	assert.Equal(t, s.Revision(), rs.Results[0].Revision)
	assert.Equal(t, store.TopicHandle{Category: "A", Title: "z"}, rs.Results[0].Handle())

	require.NoError(t, s.SetField(rs.Results[0].Handle(), store.FieldNotes, "edited"))
	assert.True(t, rs.Stale(s))
	assert.Empty(t, rs.Results[0].Topic.Notes, "results hold snapshots")
}

func TestListing(t *testing.T) {
	t.Parallel()

	s := orderedStore(t)
	assert.Equal(t, []string{"A/a", "A/z"}, keys(search.Listing(s, "A")))
	assert.Empty(t, search.Listing(s, "C").Results)
}

func TestMatcher(t *testing.T) {
	t.Parallel()

	tests := []struct {
		term  string
		exact bool
		text  string
		want  bool
	}{
		{"vlan", true, "show vlans", false},
		{"vlan", false, "show vlans", true},
		{"vlan", true, "interface vlan 10", true},
		{"vlan", true, "vlan", true},
		{"10.0.0.1", true, "ping 10.0.0.1", true},
		{"10.0.0.1", true, "ping 10.0.0.11", false},
		{"ip route", true, "show ip route static", true},
		{"café", true, "le café noir", true},
		{"caf", true, "le café noir", false},
		{"", true, "anything", true},
	}

	for _, tt := range tests {
		got := search.NewMatcher(tt.term, tt.exact).Match(tt.text)
		assert.Equal(t, tt.want, got, "%q exact=%v in %q", tt.term, tt.exact, tt.text)
	}
}

func TestScope(t *testing.T) {
	t.Parallel()

	assert.True(t, search.AllCategories().All())
	assert.False(t, search.SingleCategory("A").All())
	assert.Equal(t, "all", search.AllCategories().String())
	assert.Equal(t, "A", search.SingleCategory("A").String())
}
