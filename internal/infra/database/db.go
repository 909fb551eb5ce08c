package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const (
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 25
	defaultConnMaxLifetime = 5 * time.Minute
	defaultConnMaxIdleTime = 1 * time.Minute
)

// Dialect selects the SQL flavour used by the repositories.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

// placeholder returns the n-th (1-based) bind parameter for the dialect.
func (d Dialect) placeholder(n int) string {
	if d == DialectPostgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// DB bundles a connection pool with the dialect it speaks.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open connects to PostgreSQL when databaseURL is set, otherwise to the
// SQLite file at sqlitePath. The schema is created if missing.
func Open(databaseURL, sqlitePath string) (*DB, error) {
	var (
		db  *DB
		err error
	)
	if databaseURL != "" {
		db, err = NewPostgresConnection(databaseURL)
	} else {
		db, err = NewSQLiteConnection(sqlitePath)
	}
	if err != nil {
		return nil, err
	}

	if err := db.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// NewPostgresConnection creates and returns a new PostgreSQL database connection.
// It also pings the database to ensure connectivity.
func NewPostgresConnection(dataSourceName string) (*DB, error) {
	conn, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	conn.SetMaxOpenConns(defaultMaxOpenConns)
	conn.SetMaxIdleConns(defaultMaxIdleConns)
	conn.SetConnMaxLifetime(defaultConnMaxLifetime)
	conn.SetConnMaxIdleTime(defaultConnMaxIdleTime)

	if err = conn.Ping(); err != nil {
		conn.Close() // Close the connection if ping fails
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: conn, Dialect: DialectPostgres}, nil
}

// NewSQLiteConnection opens (creating if needed) the SQLite file at path.
func NewSQLiteConnection(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	// SQLite serializes writers; a single connection avoids SQLITE_BUSY churn.
	conn.SetMaxOpenConns(1)

	if err = conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: conn, Dialect: DialectSQLite}, nil
}

func (db *DB) migrate() error {
	var schema string
	switch db.Dialect {
	case DialectPostgres:
		schema = `
		CREATE TABLE IF NOT EXISTS reports (
			id BIGSERIAL PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			category TEXT NOT NULL,
			object_code TEXT NOT NULL,
			user_id BIGINT NOT NULL,
			user_name TEXT NOT NULL,
			username TEXT,
			chat_id BIGINT NOT NULL,
			message_id BIGINT NOT NULL,
			content_type TEXT NOT NULL,
			text_preview TEXT
		);`
	default:
		schema = `
		CREATE TABLE IF NOT EXISTS reports (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			category TEXT NOT NULL,
			object_code TEXT NOT NULL,
			user_id INTEGER NOT NULL,
			user_name TEXT NOT NULL,
			username TEXT,
			chat_id INTEGER NOT NULL,
			message_id INTEGER NOT NULL,
			content_type TEXT NOT NULL,
			text_preview TEXT
		);`
	}

	if _, err := db.Exec(schema); err != nil {
		return err
	}

	for _, stmt := range []string{
		`CREATE INDEX IF NOT EXISTS idx_reports_object_code ON reports(object_code)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_category ON reports(category)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
