package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"toolfinder/history"
	"toolfinder/internal/timeutil"
)

type SQLiteStore struct {
	db *sql.DB
}

var ErrLookupNotFound = errors.New("lookup not found")

// toolSeparator is lossless: tools are split on commas before they get here.
const toolSeparator = ", "

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// The web server records lookups from many goroutines; one connection
	// serializes writers instead of surfacing SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS lookups (
	id TEXT PRIMARY KEY,
	query TEXT NOT NULL,
	search_key TEXT NOT NULL,
	outcome TEXT NOT NULL,
	row_number INTEGER NOT NULL DEFAULT 0 CHECK(row_number >= 0),
	tools TEXT NOT NULL DEFAULT '',
	source TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_lookups_created_at ON lookups(created_at);`); err != nil {
		return fmt.Errorf("create created_at index: %w", err)
	}
	return nil
}

func (s *SQLiteStore) InsertLookup(ctx context.Context, entry history.Entry) error {
	if strings.TrimSpace(entry.ID) == "" {
		return fmt.Errorf("lookup id is required")
	}

	const insertStmt = `
INSERT INTO lookups (
	id,
	query,
	search_key,
	outcome,
	row_number,
	tools,
	source,
	created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	if _, err := s.db.ExecContext(
		ctx,
		insertStmt,
		entry.ID,
		entry.Query,
		entry.Key,
		string(entry.Outcome),
		entry.Row,
		strings.Join(entry.Tools, toolSeparator),
		entry.Source,
		timeutil.FormatStamp(createdAt),
	); err != nil {
		return fmt.Errorf("insert lookup: %w", err)
	}
	return nil
}

const selectColumns = `
SELECT
	id,
	query,
	search_key,
	outcome,
	row_number,
	tools,
	source,
	created_at
FROM lookups`

// ListLookups returns the most recent lookups first. limit <= 0 returns all.
func (s *SQLiteStore) ListLookups(ctx context.Context, limit int) ([]history.Entry, error) {
	query := selectColumns + "\nORDER BY created_at DESC, rowid DESC"
	args := []any{}
	if limit > 0 {
		query += "\nLIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query+";", args...)
	if err != nil {
		return nil, fmt.Errorf("query lookups: %w", err)
	}
	defer rows.Close()

	entries := make([]history.Entry, 0, 64)
	for rows.Next() {
		entry, err := scanLookup(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lookups: %w", err)
	}

	return entries, nil
}

// GetLookup returns one lookup by ID or ErrLookupNotFound.
func (s *SQLiteStore) GetLookup(ctx context.Context, id string) (history.Entry, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+"\nWHERE id = ?;", strings.TrimSpace(id))
	entry, err := scanLookup(row)
	if errors.Is(err, sql.ErrNoRows) {
		return history.Entry{}, ErrLookupNotFound
	}
	return entry, err
}

// DeleteAllLookups clears the history and returns the number of removed rows.
func (s *SQLiteStore) DeleteAllLookups(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM lookups;`)
	if err != nil {
		return 0, fmt.Errorf("delete lookups: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read deleted row count: %w", err)
	}
	return deleted, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLookup(row rowScanner) (history.Entry, error) {
	var (
		entry      history.Entry
		outcome    string
		toolsRaw   string
		createdRaw string
	)
	if err := row.Scan(
		&entry.ID,
		&entry.Query,
		&entry.Key,
		&outcome,
		&entry.Row,
		&toolsRaw,
		&entry.Source,
		&createdRaw,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return history.Entry{}, err
		}
		return history.Entry{}, fmt.Errorf("scan lookup: %w", err)
	}

	entry.Outcome = history.Outcome(outcome)
	if toolsRaw != "" {
		entry.Tools = strings.Split(toolsRaw, toolSeparator)
	}

	createdAt, err := timeutil.ParseStamp(createdRaw)
	if err != nil {
		return history.Entry{}, fmt.Errorf("parse created_at %q: %w", createdRaw, err)
	}
	entry.CreatedAt = createdAt

	return entry, nil
}
