// Package jsonfile persists the corpus as a single JSON document mapping
// category -> title -> topic record. Object key order is the corpus order,
// so the file is read and written with streaming calls instead of maps.
package jsonfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/noelzubin/cmdref/annotate"
	"github.com/noelzubin/cmdref/store"
)

var api = jsoniter.Config{
	IndentionStep:          4,
	EscapeHTML:             false,
	SortMapKeys:            false,
	ValidateJsonRawMessage: true,
}.Froze()

// record is the on-disk shape of one topic.
type record struct {
	Code         string                `json:"code"`
	Verification string                `json:"verification"`
	Example      string                `json:"example"`
	Desc         string                `json:"desc"`
	Notes        string                `json:"notes"`
	Styles       []annotate.StyleRange `json:"styles,omitempty"`
}

// Backend reads and writes a JSON file at Path.
type Backend struct {
	Path string
}

func NewBackend(path string) *Backend {
	return &Backend{Path: path}
}

// Load reads the file. A missing file yields an error wrapping fs.ErrNotExist.
func (b *Backend) Load() (*store.Store, error) {
	f, err := os.Open(b.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", b.Path, err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", b.Path, err)
	}
	return s, nil
}

// Save writes the corpus to a temp file next to Path and renames it over.
func (b *Backend) Save(s *store.Store) error {
	dir := filepath.Dir(b.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(b.Path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	if err := Encode(w, s); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", b.Path, err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), b.Path)
}

// Decode reads a corpus, keeping the key order of the document.
func Decode(r io.Reader) (*store.Store, error) {
	s := store.New()
	iter := jsoniter.Parse(api, r, 4096)

	if iter.WhatIsNext() != jsoniter.ObjectValue {
		if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
			return nil, iter.Error
		}
		return nil, errors.New("top level value is not an object")
	}

	var failed error
	ok := iter.ReadObjectCB(func(iter *jsoniter.Iterator, category string) bool {
		if err := s.AddCategory(category); err != nil {
			failed = err
			return false
		}
		if iter.WhatIsNext() != jsoniter.ObjectValue {
			iter.ReportError("read category", fmt.Sprintf("category %q is not an object", category))
			return false
		}
		return iter.ReadObjectCB(func(iter *jsoniter.Iterator, title string) bool {
			var rec record
			iter.ReadVal(&rec)
			if iter.Error != nil {
				return false
			}
			err := s.Restore(category, store.Topic{
				Title:        title,
				Code:         rec.Code,
				Verification: rec.Verification,
				Example:      rec.Example,
				Desc:         rec.Desc,
				Notes:        rec.Notes,
				Styles:       rec.Styles,
			})
			if err != nil {
				failed = err
				return false
			}
			return true
		})
	})

	if failed != nil {
		return nil, failed
	}
	if !ok {
		if iter.Error != nil {
			return nil, iter.Error
		}
		return nil, errors.New("malformed document")
	}
	if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
		return nil, iter.Error
	}

	// only whitespace may follow the object
	if iter.Error == nil {
		iter.WhatIsNext()
		if iter.Error == nil {
			return nil, errors.New("unexpected data after top level object")
		}
		if !errors.Is(iter.Error, io.EOF) {
			return nil, iter.Error
		}
	}
	return s, nil
}

// Encode writes the corpus as an indented JSON object in corpus order.
func Encode(w io.Writer, s *store.Store) error {
	stream := jsoniter.NewStream(api, w, 4096)

	stream.WriteObjectStart()
	for i, category := range s.Categories() {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(category)
		stream.WriteObjectStart()
		for j, t := range s.Topics(category) {
			if j > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(t.Title)
			stream.WriteVal(record{
				Code:         t.Code,
				Verification: t.Verification,
				Example:      t.Example,
				Desc:         t.Desc,
				Notes:        t.Notes,
				Styles:       t.Styles,
			})
		}
		stream.WriteObjectEnd()
	}
	stream.WriteObjectEnd()
	stream.WriteRaw("\n")

	if stream.Error != nil {
		return stream.Error
	}
	return stream.Flush()
}
