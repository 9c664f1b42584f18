package cache

import (
	"context"
	"database/sql"
	stderrors "errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/domeafavour/hello-ast/internal/errors"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens or creates the cache database at dbPath.
// Use ":memory:" for an in-memory cache.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, errors.CacheError("open", err).WithContext("path", dbPath)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.CacheError("open", err).WithContext("path", dbPath)
	}
	// Each connection to ":memory:" is its own database.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, errors.CacheError("initialize", err).WithContext("path", dbPath)
	}

	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS outputs (
		fingerprint TEXT NOT NULL,
		format TEXT NOT NULL,
		data BLOB NOT NULL,
		created_at INTEGER NOT NULL,
		PRIMARY KEY (fingerprint, format)
	);
	CREATE INDEX IF NOT EXISTS idx_created_at ON outputs(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, fingerprint, format string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM outputs WHERE fingerprint = ? AND format = ?",
		fingerprint, format,
	).Scan(&data)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.CacheError("get", err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, true, nil
}

// Put implements Store. An existing entry for the same key is replaced.
func (s *SQLiteStore) Put(ctx context.Context, fingerprint, format string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if data == nil {
		data = []byte{}
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO outputs (fingerprint, format, data, created_at) VALUES (?, ?, ?, ?)",
		fingerprint, format, data, time.Now().Unix(),
	)
	if err != nil {
		return errors.CacheError("put", err)
	}
	return nil
}

// Prune removes entries older than cutoff and returns how many were deleted.
func (s *SQLiteStore) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM outputs WHERE created_at < ?", cutoff.Unix())
	if err != nil {
		return 0, errors.CacheError("prune", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.CacheError("prune", err)
	}
	return n, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
