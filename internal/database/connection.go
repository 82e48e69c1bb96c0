package database

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Config selects the storage driver and location.
type Config struct {
	// Driver is "sqlite" or "postgres".
	Driver string
	// DSN is the sqlite file path (":memory:" allowed) or the postgres
	// connection string.
	DSN string
}

// ConfigFromEnv builds a Config from DB_TYPE plus DB_PATH or DATABASE_URL.
func ConfigFromEnv() Config {
	driver := os.Getenv("DB_TYPE")
	if driver == "" {
		driver = "sqlite"
	}
	if driver == "postgres" {
		return Config{Driver: driver, DSN: os.Getenv("DATABASE_URL")}
	}
	dsn := os.Getenv("DB_PATH")
	if dsn == "" {
		dsn = filepath.Join("data", "wordvault.db")
	}
	return Config{Driver: driver, DSN: dsn}
}

// Store is the shared database handle. It is constructed explicitly and
// passed into each component; there is no package-level instance.
type Store struct {
	db     *sqlx.DB
	driver string

	initOnce sync.Once
	initErr  error
}

// Open connects to the configured database and ensures the schema exists.
func Open(cfg Config) (*Store, error) {
	switch cfg.Driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", cfg.Driver)
	}

	if cfg.Driver == "sqlite" && cfg.DSN != ":memory:" {
		if dir := filepath.Dir(cfg.DSN); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %v", err)
			}
		}
	}

	driverName := cfg.Driver
	if driverName == "sqlite" {
		driverName = "sqlite3"
	}
	db, err := sqlx.Connect(driverName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	if cfg.Driver == "sqlite" {
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %v", err)
		}
		// SQLite doesn't support multiple writers.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	s := &Store{db: db, driver: cfg.Driver}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// ensureSchema creates the tables once. Concurrent callers all wait on the
// same attempt instead of racing to run the DDL twice.
func (s *Store) ensureSchema() error {
	s.initOnce.Do(func() {
		s.initErr = s.createTables()
	})
	return s.initErr
}

// DB exposes the underlying sqlx handle.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Driver reports "sqlite" or "postgres".
func (s *Store) Driver() string {
	return s.driver
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
