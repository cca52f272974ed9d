package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Storage keys. These names are part of the persisted format and must
// not change between releases.
const (
	// KeySafeList holds the allow-list as a JSON array of URLs.
	KeySafeList = "safeList"

	// KeyScanHistory holds the scan history as a JSON array of records,
	// newest first, capped at model.HistoryCap.
	KeyScanHistory = "scanHistory"

	// KeySettings holds the user settings object.
	KeySettings = "settings"
)

// dbFileName is the SQLite database file name inside the data directory.
const dbFileName = "trustlens.db"

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store is closed")

// KV is a durable key-value store over SQLite. Values are stored as
// JSON text so that every context observes the same serialized form.
type KV struct {
	db     *sql.DB
	dbPath string
}

// Options configures KV behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// read performance.
	EnableWAL bool
}

// DefaultOptions returns the default store options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a KV store in the given data directory.
// When CreateIfNotExists is false and no database exists, an error is
// returned instead of creating an empty one.
func Open(dataDir string, opts Options) (*KV, error) {
	dbPath := filepath.Join(dataDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (run 'trustlens init' first)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dataDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to refuse creating new files and
	// mode=rwc to allow creation.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports a single writer; multiple connections only add
	// lock contention for this workload.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	kv := &KV{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := kv.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return kv, nil
}

// Close closes the underlying database connection.
func (kv *KV) Close() error {
	return kv.db.Close()
}

// Path returns the path of the database file.
func (kv *KV) Path() string {
	return kv.dbPath
}

// createTables creates the schema if it does not exist.
func (kv *KV) createTables() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	_, err := kv.db.ExecContext(context.Background(), schema)
	return err
}

// Get loads the value stored under key into the given pointer.
// It reports false with a nil error when the key is absent.
func (kv *KV) Get(ctx context.Context, key string, into any) (bool, error) {
	var value string
	err := kv.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read key %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(value), into); err != nil {
		return false, fmt.Errorf("failed to decode value for key %q: %w", key, err)
	}
	return true, nil
}

// Set stores the JSON serialization of v under key, replacing any
// existing value.
func (kv *KV) Set(ctx context.Context, key string, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode value for key %q: %w", key, err)
	}

	_, err = kv.db.ExecContext(ctx,
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, string(value))
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Has reports whether a key exists without decoding its value.
func (kv *KV) Has(ctx context.Context, key string) (bool, error) {
	var one int
	err := kv.db.QueryRowContext(ctx, "SELECT 1 FROM kv WHERE key = ?", key).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check key %q: %w", key, err)
	}
	return true, nil
}
