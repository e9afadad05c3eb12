package bleve_indexer

import (
	"io"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"
	jsoniter "github.com/json-iterator/go"
	"github.com/noelzubin/cmdref/search"
	"github.com/noelzubin/cmdref/store"
	"github.com/noelzubin/cmdref/utils"
	"github.com/samber/lo"
)

// bleveIndexer is the implementation of the search.Searcher interface which
// narrows each query down with a bleve index before checking candidates.
//
// Every topic is indexed as a single keyword term holding its lowercased
// searchable text, so a regexp over that term finds substrings anywhere in
// the topic. Hits are then verified with the same matcher the scanner uses
// and put back in store order, which keeps results identical to a scan.
type bleveIndexer struct {
	mu           sync.Mutex
	index        bleve.Index
	indexPath    string        // empty for an in-memory index
	fingerprints []Fingerprint // what the index currently holds
	synced       *store.Store  // store the fingerprints were taken from
	revision     uint64        // its revision at that time
	logger       *log.Logger
}

// topicDoc is the struct that is indexed.
type topicDoc struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// NewBleveIndexer returns a new search.Searcher backed by bleve.
func NewBleveIndexer(config *utils.Config, logger *log.Logger) (*bleveIndexer, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	index, err := GetIndex(config.IndexPath)
	if err != nil {
		return nil, err
	}

	s := &bleveIndexer{index: index, indexPath: config.IndexPath, logger: logger}
	if config.IndexPath != "" {
		s.fingerprints, err = readFingerprints(getFingerprintsPath(config.IndexPath))
		if err != nil {
			s.fingerprints = nil
		}
		// fingerprints only describe the index they were written with
		if count, err := index.DocCount(); err != nil || count != uint64(len(s.fingerprints)) {
			s.fingerprints = nil
		}
	}
	return s, nil
}

// Get path to the fingerprints.json file kept next to the index.
func getFingerprintsPath(indexPath string) string {
	return indexPath + ".fingerprints.json"
}

func (s *bleveIndexer) CloseIndex() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// Sync brings the index up to date with st.
//
// It compares the fingerprints of all the topics in st with the ones the
// index was built from. New or changed topics are indexed, topics that are
// gone are removed from the index.
func (s *bleveIndexer) Sync(st *store.Store) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sync(st)
}

func (s *bleveIndexer) sync(st *store.Store) error {
	if s.synced == st && s.revision == st.Revision() {
		return nil
	}

	current := fingerprintStore(st)
	deleted, modified, created := compareFingerprints(s.fingerprints, current)

	batch := s.index.NewBatch()
	for _, fp := range deleted {
		batch.Delete(fp.ID)
	}
	for _, fp := range append(modified, created...) {
		if err := batch.Index(fp.ID, topicDoc{Category: fp.Category, Text: fp.text}); err != nil {
			return err
		}
	}
	if err := s.index.Batch(batch); err != nil {
		return err
	}

	s.fingerprints = current
	s.synced = st
	s.revision = st.Revision()

	s.logger.Debug("index synced",
		"deleted", len(deleted), "modified", len(modified), "created", len(created), "revision", s.revision)

	if s.indexPath != "" {
		if err := storeFingerprints(getFingerprintsPath(s.indexPath), current); err != nil {
			s.logger.Warn("failed to store fingerprints", "error", err)
		}
	}
	return nil
}

// Search runs q against st.
func (s *bleveIndexer) Search(st *store.Store, q search.Query) (search.ResultSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	term := strings.ToLower(strings.TrimSpace(q.Term))
	if term == "" {
		return search.Scan(st, q), nil
	}

	if err := s.sync(st); err != nil {
		return search.ResultSet{}, err
	}

	rs := search.ResultSet{Query: q, Revision: st.Revision()}

	count, err := s.index.DocCount()
	if err != nil {
		return rs, err
	}
	if count == 0 {
		return rs, nil
	}

	textQuery := bleve.NewRegexpQuery(`(?s).*` + regexp.QuoteMeta(term) + `.*`)
	textQuery.SetField("text")

	var bleveQuery query.Query = textQuery
	if !q.Scope.All() {
		categoryQuery := bleve.NewTermQuery(q.Scope.Category)
		categoryQuery.SetField("category")
		bleveQuery = bleve.NewConjunctionQuery(textQuery, categoryQuery)
	}

	searchRequest := bleve.NewSearchRequestOptions(bleveQuery, int(count), 0, false)
	searchResult, err := s.index.Search(searchRequest)
	if err != nil {
		return rs, err
	}

	hits := make(map[string]struct{}, len(searchResult.Hits))
	for _, hit := range searchResult.Hits {
		hits[hit.ID] = struct{}{}
	}

	m := search.NewMatcher(term, q.Exact)
	rs.Results = lo.Filter(search.Candidates(st, q.Scope), func(r search.Result, _ int) bool {
		if _, ok := hits[docID(r.Category, r.Title)]; !ok {
			return false
		}
		return m.Match(search.SearchableText(r.Title, r.Topic))
	})
	return rs, nil
}

// GetIndex returns the index at path if it exists or creates a new one if it
// doesn't. An empty path gives an in-memory index.
func GetIndex(path string) (bleve.Index, error) {
	if path == "" {
		return bleve.NewMemOnly(newIndexMapping())
	}

	index, err := bleve.Open(path)
	if err == nil {
		return index, nil
	}

	if err != bleve.ErrorIndexPathDoesNotExist {
		// unreadable index, start over
		if err := os.RemoveAll(path); err != nil {
			return nil, err
		}
	}
	// a new index holds nothing the old fingerprints describe
	if err := os.Remove(getFingerprintsPath(path)); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return bleve.New(path, newIndexMapping())
}

// keywordField indexes the whole value as one unanalysed term.
func keywordField() *mapping.FieldMapping {
	fm := bleve.NewTextFieldMapping()
	fm.Analyzer = keyword.Name
	fm.Store = false
	fm.IncludeInAll = false
	fm.IncludeTermVectors = false
	return fm
}

func newIndexMapping() mapping.IndexMapping {
	doc := bleve.NewDocumentStaticMapping()
	doc.AddFieldMappingsAt("category", keywordField())
	doc.AddFieldMappingsAt("text", keywordField())

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	m.DefaultAnalyzer = keyword.Name
	return m
}

// Fingerprint identifies the indexed content of one topic.
// This is what is stored in the fingerprints file.
type Fingerprint struct {
	ID       string `json:"id"`       // document id in the index
	Category string `json:"category"` // category of the topic
	Hash     uint64 `json:"hash"`     // xxhash of the searchable text
	text     string
}

func docID(category, title string) string {
	return category + "\x1f" + title
}

// fingerprintStore returns the fingerprints of every topic in st.
func fingerprintStore(st *store.Store) []Fingerprint {
	var fps []Fingerprint
	st.Each(func(category string, t store.Topic) bool {
		text := search.SearchableText(t.Title, t)
		fps = append(fps, Fingerprint{
			ID:       docID(category, t.Title),
			Category: category,
			Hash:     xxhash.Sum64String(text),
			text:     text,
		})
		return true
	})
	return fps
}

// compareFingerprints compares the old and current fingerprints and returns
// the deleted, modified and created ones.
func compareFingerprints(old, current []Fingerprint) (deleted, modified, created []Fingerprint) {
	deleted = make([]Fingerprint, 0)
	created = make([]Fingerprint, 0)
	modified = make([]Fingerprint, 0)

	before := lo.KeyBy(old, func(fp Fingerprint) string { return fp.ID })
	after := lo.KeyBy(current, func(fp Fingerprint) string { return fp.ID })

	for _, fp := range old {
		if _, found := after[fp.ID]; !found {
			deleted = append(deleted, fp)
		}
	}

	for _, fp := range current {
		prev, found := before[fp.ID]
		switch {
		case !found:
			created = append(created, fp)
		case prev.Hash != fp.Hash:
			modified = append(modified, fp)
		}
	}

	return deleted, modified, created
}

// storeFingerprints stores the given fingerprints in the given path.
func storeFingerprints(path string, fps []Fingerprint) error {
	data, err := jsoniter.Marshal(fps)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// readFingerprints reads the fingerprints from the given path.
func readFingerprints(path string) ([]Fingerprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fps []Fingerprint
	if err := jsoniter.Unmarshal(data, &fps); err != nil {
		return nil, err
	}
	return fps, nil
}
