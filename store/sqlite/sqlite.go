// Package sqlite persists the corpus in a SQLite database. Positions are
// stored explicitly so the corpus order survives a round trip.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/noelzubin/cmdref/annotate"
	"github.com/noelzubin/cmdref/store"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

const schema = `
CREATE TABLE IF NOT EXISTS categories (
	name     TEXT PRIMARY KEY,
	position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS topics (
	category     TEXT NOT NULL REFERENCES categories(name) ON DELETE CASCADE,
	title        TEXT NOT NULL,
	position     INTEGER NOT NULL,
	code         TEXT NOT NULL DEFAULT '',
	verification TEXT NOT NULL DEFAULT '',
	example      TEXT NOT NULL DEFAULT '',
	description  TEXT NOT NULL DEFAULT '',
	notes        TEXT NOT NULL DEFAULT '',
	styles       TEXT NOT NULL DEFAULT '[]',
	PRIMARY KEY (category, title)
);

CREATE INDEX IF NOT EXISTS idx_topics_position ON topics(category, position);
`

// Backend stores the corpus in the database at Path. The database is opened
// lazily and kept open until Close.
type Backend struct {
	Path string
	db   *sql.DB
}

func NewBackend(path string) *Backend {
	return &Backend{Path: path}
}

// dsn enables foreign keys on every pooled connection, not just the first.
func dsn(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)"
}

func (b *Backend) open() error {
	if b.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", dsn(b.Path))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	b.db = db
	return nil
}

// Close closes the database if it was opened.
func (b *Backend) Close() error {
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}

// Load reads the corpus. A database file that does not exist yet, or one
// without any categories, yields an error wrapping fs.ErrNotExist.
func (b *Backend) Load() (*store.Store, error) {
	if b.db == nil {
		if _, err := os.Stat(b.Path); err != nil {
			return nil, fmt.Errorf("open %s: %w", b.Path, err)
		}
	}
	if err := b.open(); err != nil {
		return nil, err
	}

	s := store.New()
	rows, err := b.db.Query(`SELECT name FROM categories ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, err
		}
		names = append(names, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no categories in %s: %w", b.Path, fs.ErrNotExist)
	}

	for _, name := range names {
		if err := s.AddCategory(name); err != nil {
			return nil, err
		}
		if err := b.loadTopics(s, name); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (b *Backend) loadTopics(s *store.Store, category string) error {
	rows, err := b.db.Query(`
		SELECT title, code, verification, example, description, notes, styles
		FROM topics WHERE category = ? ORDER BY position`, category)
	if err != nil {
		return fmt.Errorf("failed to query topics of %q: %w", category, err)
	}
	defer rows.Close()

	for rows.Next() {
		var t store.Topic
		var styles string
		if err := rows.Scan(&t.Title, &t.Code, &t.Verification, &t.Example, &t.Desc, &t.Notes, &styles); err != nil {
			return err
		}
		if err := jsoniter.UnmarshalFromString(styles, &t.Styles); err != nil {
			return fmt.Errorf("styles of [%s] %s: %w", category, t.Title, err)
		}
		if err := s.Restore(category, t); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Save replaces the stored corpus in a single transaction.
func (b *Backend) Save(s *store.Store) (err error) {
	if err := b.open(); err != nil {
		return err
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	if _, err = tx.Exec(`DELETE FROM topics`); err != nil {
		return err
	}
	if _, err = tx.Exec(`DELETE FROM categories`); err != nil {
		return err
	}

	catStmt, err := tx.Prepare(`INSERT INTO categories (name, position) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer catStmt.Close()

	topicStmt, err := tx.Prepare(`
		INSERT INTO topics (category, title, position, code, verification, example, description, notes, styles)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer topicStmt.Close()

	for i, name := range s.Categories() {
		if _, err = catStmt.Exec(name, i); err != nil {
			return fmt.Errorf("failed to save category %q: %w", name, err)
		}
		for j, t := range s.Topics(name) {
			styles, merr := marshalStyles(t.Styles)
			if merr != nil {
				err = merr
				return err
			}
			if _, err = topicStmt.Exec(name, t.Title, j, t.Code, t.Verification, t.Example, t.Desc, t.Notes, styles); err != nil {
				return fmt.Errorf("failed to save topic [%s] %s: %w", name, t.Title, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func marshalStyles(styles []annotate.StyleRange) (string, error) {
	if len(styles) == 0 {
		return "[]", nil
	}
	return jsoniter.MarshalToString(styles)
}
