package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteBlobs keeps blobs in a single-table SQLite database. One writer,
// one row per key; the document lives in one row.
type SQLiteBlobs struct {
	db *sql.DB
}

const blobSchema = `
CREATE TABLE IF NOT EXISTS blobs (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TEXT NOT NULL
);`

func OpenSQLite(path string) (*SQLiteBlobs, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(blobSchema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteBlobs{db: db}, nil
}

func (b *SQLiteBlobs) Read(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := b.db.QueryRowContext(ctx,
		`SELECT value FROM blobs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (b *SQLiteBlobs) Write(ctx context.Context, key string, data []byte) error {
	_, err := b.db.ExecContext(ctx, `
INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, data, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (b *SQLiteBlobs) Close() error {
	return b.db.Close()
}
