// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session keeps fetched record sets for the lifetime of a server
// process so the dashboard can re-slice them without re-querying the API.
// Storage is an in-memory SQLite database; nothing survives process exit.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/biblioviz/pkg/types"
)

// ErrNotFound reports a lookup for a session id that does not exist.
var ErrNotFound = errors.New("session: not found")

// Store holds search sessions in an in-memory SQLite database.
type Store struct {
	db *sql.DB
}

// SearchSet is one stored search: the equation, the fetched records, and
// the total the API reported as available.
type SearchSet struct {
	ID             string         `json:"id"`
	Equation       string         `json:"equation"`
	TotalAvailable int            `json:"total_available"`
	CreatedAt      time.Time      `json:"created_at"`
	Records        []types.Record `json:"-"`
}

// Summary is the listing view of a stored search.
type Summary struct {
	ID             string    `json:"id"`
	Equation       string    `json:"equation"`
	Fetched        int       `json:"fetched"`
	TotalAvailable int       `json:"total_available"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewStore opens a fresh in-memory database and creates the schema.
func NewStore() (*Store, error) {
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}
	// A second connection would see a different empty :memory: database.
	db.SetMaxOpenConns(1)

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
		`CREATE TABLE IF NOT EXISTS searches (
			id TEXT PRIMARY KEY,
			equation TEXT NOT NULL,
			total_available INTEGER NOT NULL,
			fetched INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			search_id TEXT NOT NULL REFERENCES searches(id),
			position INTEGER NOT NULL,
			raw TEXT NOT NULL,
			PRIMARY KEY (search_id, position)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save stores a fetched record set and returns its new session id.
// Records are stored as the raw JSON the API returned, so reloading
// re-runs the same tolerant decoding the original fetch did.
func (s *Store) Save(ctx context.Context, equation string, records []types.Record, totalAvailable int) (string, error) {
	id := uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO searches (id, equation, total_available, fetched, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id, equation, totalAvailable, len(records), createdAt,
	)
	if err != nil {
		return "", fmt.Errorf("inserting search: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (search_id, position, raw) VALUES (?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		raw := rec.Raw
		if len(raw) == 0 {
			raw, err = json.Marshal(rec)
			if err != nil {
				return "", fmt.Errorf("marshaling record %d: %w", i, err)
			}
		}
		if _, err := stmt.ExecContext(ctx, id, i, string(raw)); err != nil {
			return "", fmt.Errorf("inserting record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing session: %w", err)
	}
	return id, nil
}

// Load returns a stored search with its records in fetch order.
func (s *Store) Load(ctx context.Context, id string) (*SearchSet, error) {
	var set SearchSet
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, equation, total_available, created_at FROM searches WHERE id = ?`, id,
	).Scan(&set.ID, &set.Equation, &set.TotalAvailable, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading search: %w", err)
	}
	set.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)

	rows, err := s.db.QueryContext(ctx,
		`SELECT raw FROM records WHERE search_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("loading records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		var rec types.Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("parsing stored record: %w", err)
		}
		set.Records = append(set.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return &set, nil
}

// List returns stored search summaries, newest first.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, equation, fetched, total_available, created_at
		 FROM searches ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing searches: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var createdAt string
		if err := rows.Scan(&sum.ID, &sum.Equation, &sum.Fetched, &sum.TotalAvailable, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning search: %w", err)
		}
		sum.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating searches: %w", err)
	}
	return out, nil
}
