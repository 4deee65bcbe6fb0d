package datastore

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/rajyadav1814/repoguard/internal/common"
)

// SQLiteStore is the default local BlobStore backend.
type SQLiteStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewSQLiteStore opens (creating if needed) the SQLite database at the
// given path and ensures the schema exists.
func NewSQLiteStore(dataSourceName string, logger zerolog.Logger) (*SQLiteStore, error) {
	dbDir := filepath.Dir(dataSourceName)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, common.WrapErrorf(err, "failed to create store directory %s", dbDir)
	}

	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, common.WrapErrorf(err, "sql.Open failed for %s", dataSourceName)
	}

	store := &SQLiteStore{
		db:     db,
		logger: logger.With().Str("component", "SQLiteStore").Logger(),
	}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, common.WrapError(err, "failed to initialize schema")
	}
	store.logger.Info().Str("path", dataSourceName).Msg("Blob store initialized")
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS scan_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		repo TEXT NOT NULL,
		blob TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_scan_records_repo_kind ON scan_records (repo, kind, created_at);
	`
	_, err := s.db.Exec(query)
	return err
}

// Append implements BlobStore.
func (s *SQLiteStore) Append(ctx context.Context, record BlobRecord) error {
	query := `INSERT INTO scan_records (kind, repo, blob, created_at) VALUES (?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, record.Kind, record.Repo, record.Blob, time.Now().UTC()); err != nil {
		return common.WrapErrorf(err, "failed to append %s record for %s", record.Kind, record.Repo)
	}
	return nil
}

// Query implements BlobStore, returning blobs newest first.
func (s *SQLiteStore) Query(ctx context.Context, repo, kindHint string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `SELECT blob FROM scan_records WHERE repo = ? AND kind = ? ORDER BY created_at DESC, id DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, repo, kindHint, limit)
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to query %s records for %s", kindHint, repo)
	}
	defer rows.Close()

	var blobs []string
	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return nil, common.WrapError(err, "failed to scan record row")
		}
		blobs = append(blobs, blob)
	}
	return blobs, rows.Err()
}

// Close implements BlobStore.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
