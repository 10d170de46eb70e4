// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store archives extracted measurements in a local SQLite
// database so runs accumulate and records can be queried without
// re-reading the JSON output.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/mechprops/pkg/types"
)

// Store manages the results SQLite database.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
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
		`CREATE TABLE IF NOT EXISTS papers (
			doi TEXT PRIMARY KEY,
			title TEXT,
			authors TEXT,
			publication_date TEXT,
			journal TEXT,
			extraction_method TEXT,
			extracted_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS properties (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			doi TEXT NOT NULL REFERENCES papers(doi),
			material TEXT NOT NULL,
			condition TEXT,
			property_name TEXT NOT NULL,
			value REAL NOT NULL,
			unit TEXT NOT NULL,
			temperature REAL,
			temperature_unit TEXT,
			strain_rate REAL,
			additional_info TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_properties_doi ON properties(doi)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Save upserts the paper row and replaces its property rows, so a rerun
// over an unchanged paper leaves the archive unchanged apart from the
// extraction timestamp.
func (s *Store) Save(data types.ExtractedData) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	meta := data.PaperMetadata
	_, err = tx.Exec(
		`INSERT OR REPLACE INTO papers (doi, title, authors, publication_date, journal, extraction_method, extracted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		meta.DOI, meta.Title, strings.Join(meta.Authors, "; "),
		meta.PublicationDate, meta.Journal,
		data.ExtractionMethod, data.ExtractionTimestamp.UTC().Format("2006-01-02T15:04:05Z"),
	)
	if err != nil {
		return fmt.Errorf("upserting paper %s: %w", meta.DOI, err)
	}

	if _, err := tx.Exec(`DELETE FROM properties WHERE doi = ?`, meta.DOI); err != nil {
		return fmt.Errorf("clearing properties for %s: %w", meta.DOI, err)
	}

	for _, p := range data.MechanicalProperties {
		info, err := json.Marshal(p.AdditionalInfo)
		if err != nil {
			info = []byte("{}")
		}
		_, err = tx.Exec(
			`INSERT INTO properties (doi, material, condition, property_name, value, unit, temperature, temperature_unit, strain_rate, additional_info)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			meta.DOI, p.Material, p.Condition, p.PropertyName, p.Value, p.Unit,
			p.Temperature, p.TemperatureUnit, p.StrainRate, string(info),
		)
		if err != nil {
			return fmt.Errorf("inserting property for %s: %w", meta.DOI, err)
		}
	}

	return tx.Commit()
}

// CountProperties returns the total number of archived property rows.
func (s *Store) CountProperties() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM properties`).Scan(&n)
	return n, err
}

// PropertyRow is one archived measurement with its source DOI.
type PropertyRow struct {
	DOI string
	types.MechanicalProperty
}

// ListProperties returns archived measurements, optionally filtered by
// DOI. An empty doi lists everything, ordered by DOI then insertion.
func (s *Store) ListProperties(doi string) ([]PropertyRow, error) {
	query := `SELECT doi, material, condition, property_name, value, unit, temperature, temperature_unit, strain_rate, additional_info
	          FROM properties`
	args := []any{}
	if doi != "" {
		query += ` WHERE doi = ?`
		args = append(args, doi)
	}
	query += ` ORDER BY doi, rowid`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying properties: %w", err)
	}
	defer rows.Close()

	var result []PropertyRow
	for rows.Next() {
		var r PropertyRow
		var condition, tempUnit, info sql.NullString
		var temp, strainRate sql.NullFloat64
		err := rows.Scan(&r.DOI, &r.Material, &condition, &r.PropertyName, &r.Value, &r.Unit,
			&temp, &tempUnit, &strainRate, &info)
		if err != nil {
			return nil, fmt.Errorf("scanning property row: %w", err)
		}
		r.Condition = condition.String
		r.TemperatureUnit = tempUnit.String
		if temp.Valid {
			r.Temperature = &temp.Float64
		}
		if strainRate.Valid {
			r.StrainRate = &strainRate.Float64
		}
		r.AdditionalInfo = map[string]any{}
		if info.Valid && info.String != "" {
			// Best effort; a corrupt blob falls back to empty.
			json.Unmarshal([]byte(info.String), &r.AdditionalInfo)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
