// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger persists crawl state in SQLite: the last seen revision date
// of the law index and a record of every saved law document.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/lawbook/pkg/types"
)

// DBFile is the ledger database name inside the output directory.
const DBFile = "lawbook.db"

const keyLastUpdated = "last_updated"

// Store manages the ledger SQLite database.
type Store struct {
	db  *sql.DB
	dir string
}

// Open opens or creates dir/lawbook.db and its schema.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, DBFile)+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: dir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sync_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			name TEXT PRIMARY KEY,
			url TEXT NOT NULL,
			sha256 TEXT NOT NULL,
			html_path TEXT NOT NULL,
			docx_path TEXT,
			saved_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// LastUpdated returns the stored index revision date. ok is false when no
// date has been recorded yet.
func (s *Store) LastUpdated(ctx context.Context) (date string, ok bool, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT value FROM sync_state WHERE key = ?`, keyLastUpdated,
	).Scan(&date)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading last update date: %w", err)
	}
	return date, true, nil
}

// SetLastUpdated records the index revision date.
func (s *Store) SetLastUpdated(ctx context.Context, date string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sync_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		keyLastUpdated, date,
	)
	if err != nil {
		return fmt.Errorf("storing last update date: %w", err)
	}
	return nil
}

// RecordDocument upserts a saved document by name.
func (s *Store) RecordDocument(ctx context.Context, doc types.LawDocument) error {
	savedAt := doc.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (name, url, sha256, html_path, docx_path, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			url=excluded.url, sha256=excluded.sha256, html_path=excluded.html_path,
			docx_path=excluded.docx_path, saved_at=excluded.saved_at`,
		doc.Name, doc.URL, doc.SHA256, doc.HTMLPath, doc.DocxPath,
		savedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording document %s: %w", doc.Name, err)
	}
	return nil
}

// Documents lists recorded documents ordered by name.
func (s *Store) Documents(ctx context.Context) ([]types.LawDocument, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, url, sha256, html_path, COALESCE(docx_path, ''), saved_at
		 FROM documents ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []types.LawDocument
	for rows.Next() {
		var (
			d       types.LawDocument
			savedAt string
		)
		if err := rows.Scan(&d.Name, &d.URL, &d.SHA256, &d.HTMLPath, &d.DocxPath, &savedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, savedAt); err == nil {
			d.SavedAt = t
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
