// Package catalog records converted entries in a SQLite database so repeat
// conversions can skip entries that already have a page.
package catalog

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Catalog wraps a SQLite database connection.
type Catalog struct {
	db *sql.DB
}

// Record is one converted entry.
type Record struct {
	Key         string // Citation key
	DOI         string // Normalized DOI, empty if the entry had none
	Title       string
	Year        int
	Venue       string
	Path        string // Output page path, empty for stdout conversions
	ConvertedAt time.Time
}

// Open opens or creates a catalog database at the given path.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Catalog{db: db}, nil
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			key TEXT PRIMARY KEY,
			doi TEXT,
			title TEXT NOT NULL,
			year INTEGER NOT NULL,
			venue TEXT,
			path TEXT,
			converted_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_entries_doi ON entries(doi) WHERE doi IS NOT NULL AND doi != '';
	`

	_, err := db.Exec(schema)
	return err
}

// Add inserts or replaces a record. The DOI is normalized before storage so
// lookups are prefix- and case-insensitive.
func (c *Catalog) Add(rec Record) error {
	if rec.ConvertedAt.IsZero() {
		rec.ConvertedAt = time.Now()
	}
	_, err := c.db.Exec(`
		INSERT OR REPLACE INTO entries (key, doi, title, year, venue, path, converted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Key, NormalizeDOI(rec.DOI), rec.Title, rec.Year, rec.Venue, rec.Path,
		rec.ConvertedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("inserting entry %s: %w", rec.Key, err)
	}
	return nil
}

// Has returns true if the entry was already converted. DOI is the primary
// match; the citation key is the fallback when the entry has no DOI.
func (c *Catalog) Has(key, doi string) (bool, error) {
	if doi != "" {
		var n int
		err := c.db.QueryRow(`SELECT COUNT(*) FROM entries WHERE doi = ?`, NormalizeDOI(doi)).Scan(&n)
		if err != nil {
			return false, fmt.Errorf("querying by doi: %w", err)
		}
		if n > 0 {
			return true, nil
		}
	}

	var n int
	err := c.db.QueryRow(`SELECT COUNT(*) FROM entries WHERE key = ?`, key).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("querying by key: %w", err)
	}
	return n > 0, nil
}

// List returns all records ordered by conversion time, newest first.
func (c *Catalog) List() ([]Record, error) {
	rows, err := c.db.Query(`
		SELECT key, doi, title, year, venue, path, converted_at
		FROM entries ORDER BY converted_at DESC, key`)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var converted int64
		if err := rows.Scan(&rec.Key, &rec.DOI, &rec.Title, &rec.Year, &rec.Venue, &rec.Path, &converted); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		rec.ConvertedAt = time.Unix(converted, 0)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// NormalizeDOI normalizes a DOI for comparison.
// Removes common prefixes like "https://doi.org/" and lowercases.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "doi.org/")
	doi = strings.TrimPrefix(doi, "DOI:")
	doi = strings.TrimPrefix(doi, "doi:")
	return strings.ToLower(doi)
}
