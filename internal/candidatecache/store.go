package candidatecache

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"

	"marcpd/internal/bib"
	"marcpd/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump on schema changes;
// users re-import after deleting the cache database.
const schemaVersion = 1

// ErrSchemaMismatch indicates the cache database was written by a
// different schema version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Dataset names a candidate collection in the cache.
type Dataset string

const (
	DatasetRegistration Dataset = "registration"
	DatasetRenewal      Dataset = "renewal"
)

// Store is the SQLite-backed candidate cache.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the cache database under the
// configured cache directory.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(filepath.Join(cfg.Paths.CacheDir, "candidates.db"))
}

// OpenPath opens the cache database at an explicit path.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s and re-import)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// ReplaceDataset atomically swaps one dataset's rows for the given
// records. LCCNs are normalized on the way in so matching can use plain
// equality.
func (s *Store) ReplaceDataset(ctx context.Context, dataset Dataset, records []*bib.CandidateRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM candidates WHERE dataset = ?", string(dataset)); err != nil {
		return fmt.Errorf("clear dataset %s: %w", dataset, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO candidates (dataset, source_id, title, author, publisher, pub_date, year, lccn, full_text)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, record := range records {
		var year any
		if record.Year != nil {
			year = *record.Year
		}
		_, err := stmt.ExecContext(ctx,
			string(dataset),
			record.SourceID,
			record.Title,
			record.Author,
			record.Publisher,
			record.PubDate,
			year,
			bib.NormalizeLCCN(record.LCCN),
			record.FullText,
		)
		if err != nil {
			return fmt.Errorf("insert candidate %s: %w", record.SourceID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

// LoadDataset reads one dataset's records in insertion order.
func (s *Store) LoadDataset(ctx context.Context, dataset Dataset) ([]*bib.CandidateRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source_id, title, author, publisher, pub_date, year, lccn, full_text
		FROM candidates WHERE dataset = ? ORDER BY id`, string(dataset))
	if err != nil {
		return nil, fmt.Errorf("query dataset %s: %w", dataset, err)
	}
	defer func() { _ = rows.Close() }()

	var records []*bib.CandidateRecord
	for rows.Next() {
		var record bib.CandidateRecord
		var year sql.NullInt64
		if err := rows.Scan(
			&record.SourceID,
			&record.Title,
			&record.Author,
			&record.Publisher,
			&record.PubDate,
			&year,
			&record.LCCN,
			&record.FullText,
		); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		if year.Valid {
			y := int(year.Int64)
			record.Year = &y
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dataset %s: %w", dataset, err)
	}
	return records, nil
}

// Count returns the number of cached records in one dataset.
func (s *Store) Count(ctx context.Context, dataset Dataset) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM candidates WHERE dataset = ?", string(dataset)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count dataset %s: %w", dataset, err)
	}
	return count, nil
}
