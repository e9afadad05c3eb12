package bleve_indexer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/noelzubin/cmdref/search"
	"github.com/noelzubin/cmdref/store"
	"github.com/noelzubin/cmdref/store/seed"
	"github.com/noelzubin/cmdref/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIndexer(t *testing.T, indexPath string) *bleveIndexer {
	t.Helper()
	s, err := NewBleveIndexer(&utils.Config{IndexPath: indexPath}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.CloseIndex() })
	return s
}

func keys(rs search.ResultSet) []string {
	out := make([]string, len(rs.Results))
	for i, r := range rs.Results {
		out[i] = r.Category + "/" + r.Title
	}
	return out
}

func TestSearch_MatchesScan(t *testing.T) {
	t.Parallel()

	st := seed.Default()
	s := newIndexer(t, "")

	terms := []string{"vlan", "VLAN", "show ip", "ssh", "10.0.0.0", "sw1", "trunk", "docker ps", "(", ".*", "zzz", "  route  ", "é"}
	scopes := []search.Scope{search.AllCategories(), search.SingleCategory(seed.Categories[1]), search.SingleCategory("missing")}

	for _, term := range terms {
		for _, scope := range scopes {
			for _, exact := range []bool{false, true} {
				q := search.Query{Term: term, Scope: scope, Exact: exact}
				got, err := s.Search(st, q)
				require.NoError(t, err)
				want := search.Scan(st, q)
				assert.Equal(t, keys(want), keys(got), "%+v", q)
				assert.Equal(t, want.Revision, got.Revision)
			}
		}
	}
}

func TestSearch_FollowsStoreChanges(t *testing.T) {
	t.Parallel()

	st := store.New()
	h, err := st.Put("A", store.Topic{Title: "z", Code: "show vlan"})
	require.NoError(t, err)
	_, err = st.Put("A", store.Topic{Title: "a", Code: "show trunk"})
	require.NoError(t, err)

	s := newIndexer(t, "")
	q := search.Query{Term: "vlan", Scope: search.AllCategories()}

	rs, err := s.Search(st, q)
	require.NoError(t, err)
	assert.Equal(t, []string{"A/z"}, keys(rs))

	require.NoError(t, st.SetField(h, store.FieldCode, "show version"))
	_, err = st.Put("B", store.Topic{Title: "m", Code: "vlan 10"})
	require.NoError(t, err)

	rs, err = s.Search(st, q)
	require.NoError(t, err)
	assert.Equal(t, []string{"B/m"}, keys(rs))

	require.NoError(t, st.DeleteCategory("B"))
	rs, err = s.Search(st, q)
	require.NoError(t, err)
	assert.Empty(t, rs.Results)
}

func TestSearch_EmptyTermListsScope(t *testing.T) {
	t.Parallel()

	st := seed.Default()
	s := newIndexer(t, "")

	rs, err := s.Search(st, search.Query{Scope: search.SingleCategory(seed.Categories[6])})
	require.NoError(t, err)
	assert.Equal(t, keys(search.Listing(st, seed.Categories[6])), keys(rs))
}

func TestSearch_OnDisk(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "index.bleve")
	st := seed.Default()
	q := search.Query{Term: "ospf", Scope: search.AllCategories()}

	s, err := NewBleveIndexer(&utils.Config{IndexPath: path}, nil)
	require.NoError(t, err)
	rs, err := s.Search(st, q)
	require.NoError(t, err)
	require.Len(t, rs.Results, 1)
	require.NoError(t, s.CloseIndex())

	fps, err := readFingerprints(getFingerprintsPath(path))
	require.NoError(t, err)
	assert.Len(t, fps, st.Len())

	// reopening picks up the stored fingerprints, so nothing is re-indexed
	reopened := newIndexer(t, path)
	assert.Len(t, reopened.fingerprints, st.Len())
	rs, err = reopened.Search(st, q)
	require.NoError(t, err)
	assert.Equal(t, keys(search.Scan(st, q)), keys(rs))
}

func TestSearch_IndexRemovedFingerprintsKept(t *testing.T) {
	t.Parallel()

	st := seed.Default()
	path := filepath.Join(t.TempDir(), "index.bleve")
	q := search.Query{Term: "vlan", Scope: search.AllCategories()}

	s, err := NewBleveIndexer(&utils.Config{IndexPath: path}, nil)
	require.NoError(t, err)
	_, err = s.Search(st, q)
	require.NoError(t, err)
	require.NoError(t, s.CloseIndex())

	// the index goes away, its fingerprints file stays behind
	require.NoError(t, os.RemoveAll(path))
	_, err = os.Stat(getFingerprintsPath(path))
	require.NoError(t, err)

	reopened := newIndexer(t, path)
	assert.Empty(t, reopened.fingerprints)
	rs, err := reopened.Search(st, q)
	require.NoError(t, err)
	want := search.Scan(st, q)
	require.NotZero(t, want.Len())
	assert.Equal(t, keys(want), keys(rs))
}

func TestNewBleveIndexer_FingerprintsOutOfStep(t *testing.T) {
	t.Parallel()

	st := seed.Default()
	path := filepath.Join(t.TempDir(), "index.bleve")
	q := search.Query{Term: "ospf", Scope: search.AllCategories()}

	s, err := NewBleveIndexer(&utils.Config{IndexPath: path}, nil)
	require.NoError(t, err)
	_, err = s.Search(st, q)
	require.NoError(t, err)
	require.NoError(t, s.CloseIndex())

	// fingerprints claiming more documents than the index holds are dropped
	fps, err := readFingerprints(getFingerprintsPath(path))
	require.NoError(t, err)
	extra := append(fps, Fingerprint{ID: docID("x", "y"), Category: "x", Hash: 1})
	require.NoError(t, storeFingerprints(getFingerprintsPath(path), extra))

	reopened := newIndexer(t, path)
	assert.Empty(t, reopened.fingerprints)
	rs, err := reopened.Search(st, q)
	require.NoError(t, err)
	assert.Equal(t, keys(search.Scan(st, q)), keys(rs))
}

func TestCompareFingerprints(t *testing.T) {
	t.Parallel()

	old := []Fingerprint{{ID: "a", Hash: 1}, {ID: "b", Hash: 2}, {ID: "c", Hash: 3}}
	current := []Fingerprint{{ID: "b", Hash: 2}, {ID: "c", Hash: 4}, {ID: "d", Hash: 5}}

	deleted, modified, created := compareFingerprints(old, current)
	assert.Equal(t, []Fingerprint{{ID: "a", Hash: 1}}, deleted)
	assert.Equal(t, []Fingerprint{{ID: "c", Hash: 4}}, modified)
	assert.Equal(t, []Fingerprint{{ID: "d", Hash: 5}}, created)
}
