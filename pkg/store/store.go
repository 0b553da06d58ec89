// Package store persists the last computed mapping per target document in
// SQLite. One row per document; a new generation replaces the previous one.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/formsiq/fieldbridge/pkg/fieldmap"
)

// Entry is a stored mapping row.
type Entry struct {
	DocID       string
	MappingID   string
	CoveragePct float64
	UpdatedAt   int64
}

// Store wraps the mappings SQLite table.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the mappings
// table exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open mapping store: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS mappings (
		doc_id       TEXT PRIMARY KEY,
		mapping_id   TEXT NOT NULL,
		payload      TEXT NOT NULL,
		coverage_pct REAL NOT NULL,
		updated_at   INTEGER NOT NULL
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create mappings table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores the result as the last computed mapping for docID and returns
// the fresh mapping ID.
func (s *Store) Put(docID string, r *fieldmap.Result) (string, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encode mapping for %s: %w", docID, err)
	}

	id := uuid.NewString()
	const q = `INSERT INTO mappings (doc_id, mapping_id, payload, coverage_pct, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(doc_id) DO UPDATE SET
			mapping_id = excluded.mapping_id,
			payload = excluded.payload,
			coverage_pct = excluded.coverage_pct,
			updated_at = excluded.updated_at`
	if _, err := s.db.Exec(q, docID, id, string(payload), r.Report.CoveragePct, time.Now().Unix()); err != nil {
		return "", fmt.Errorf("store mapping for %s: %w", docID, err)
	}
	return id, nil
}

// Get returns the last computed mapping for docID. sql.ErrNoRows wraps
// through when the document has none.
func (s *Store) Get(docID string) (*fieldmap.Result, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM mappings WHERE doc_id = ?`, docID).Scan(&payload)
	if err != nil {
		return nil, fmt.Errorf("load mapping for %s: %w", docID, err)
	}
	var r fieldmap.Result
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return nil, fmt.Errorf("decode mapping for %s: %w", docID, err)
	}
	return &r, nil
}

// List returns row summaries ordered by document ID.
func (s *Store) List() ([]Entry, error) {
	rows, err := s.db.Query(`SELECT doc_id, mapping_id, coverage_pct, updated_at
		FROM mappings ORDER BY doc_id`)
	if err != nil {
		return nil, fmt.Errorf("list mappings: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.DocID, &e.MappingID, &e.CoveragePct, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan mapping row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
