// Package sqlite provides the SQLite-backed document store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/ghsync/internal/adapters/driven/storage/sqlite/schema"
	"github.com/custodia-labs/ghsync/internal/core/domain"
	"github.com/custodia-labs/ghsync/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

// Store is an SQLite-backed implementation of driven.DocumentStore.
// Every bulk batch runs in one transaction; per-document overwrite
// policy is expressed as INSERT OR REPLACE versus INSERT OR IGNORE, so
// create-only collisions never fail a batch.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the store at the specified data directory.
// If dataDir is empty, defaults to ~/.ghsync/data/documents.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".ghsync", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "documents.db")

	// WAL mode so readers are not blocked during a cycle's writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.applySchema(schema.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// CreateIndex provisions a logical index. An existing index keeps its
// original settings.
func (s *Store) CreateIndex(ctx context.Context, name string, settings domain.IndexSettings) error {
	encoded, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO indexes (name, settings) VALUES (?, ?)
		 ON CONFLICT (name) DO NOTHING`,
		name, string(encoded))
	if err != nil {
		return fmt.Errorf("creating index %s: %w", name, err)
	}
	return nil
}

// BulkWrite stores one batch in a single transaction.
func (s *Store) BulkWrite(ctx context.Context, index string, docs []domain.Document) error {
	if len(docs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	replace, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO documents (idx, kind, id, repo, body) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing replace: %w", err)
	}
	defer replace.Close()

	insert, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO documents (idx, kind, id, repo, body) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer insert.Close()

	for _, doc := range docs {
		stmt := insert
		if doc.Overwrite {
			stmt = replace
		}
		if _, err := stmt.ExecContext(ctx, index, string(doc.Kind), doc.ID, doc.Repo, string(doc.Body)); err != nil {
			return fmt.Errorf("writing document %s/%s: %w", doc.Kind, doc.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}
	return nil
}

// DeleteByKind removes every document of one kind from the index.
func (s *Store) DeleteByKind(ctx context.Context, index string, kind domain.Kind) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE idx = ? AND kind = ?`, index, string(kind))
	if err != nil {
		return fmt.Errorf("deleting %s documents: %w", kind, err)
	}
	return nil
}

// Get retrieves one document, or domain.ErrNotFound.
func (s *Store) Get(ctx context.Context, index string, kind domain.Kind, id string) (*domain.Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT repo, body FROM documents WHERE idx = ? AND kind = ? AND id = ?`,
		index, string(kind), id)

	doc := domain.Document{ID: id, Kind: kind, Overwrite: kind.Overwrite()}
	var body string
	if err := row.Scan(&doc.Repo, &body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reading document %s/%s: %w", kind, id, err)
	}
	doc.Body = json.RawMessage(body)
	return &doc, nil
}

// Stats returns the stored document count per kind.
func (s *Store) Stats(ctx context.Context, index string) (map[domain.Kind]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, COUNT(*) FROM documents WHERE idx = ? GROUP BY kind`, index)
	if err != nil {
		return nil, fmt.Errorf("counting documents: %w", err)
	}
	defer rows.Close()

	stats := make(map[domain.Kind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		stats[domain.Kind(kind)] = n
	}
	return stats, rows.Err()
}

// applySchema executes the embedded schema files in name order. The
// statements are idempotent, so reapplying on startup is safe.
func (s *Store) applySchema(fsys fs.FS) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".sql" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		ddl, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		if _, err := s.db.Exec(string(ddl)); err != nil {
			return fmt.Errorf("executing %s: %w", name, err)
		}
	}
	return nil
}
