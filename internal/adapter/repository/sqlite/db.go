package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/wealthlens/stockreport/internal/domain"
)

// DB wraps the store connection.
type DB struct {
	*sql.DB
}

// Open opens the SQLite store at path, creating the file if needed.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &domain.StoreError{Op: "open", Err: err}
	}

	if err := db.Ping(); err != nil {
		return nil, &domain.StoreError{Op: "open", Err: err}
	}

	return &DB{DB: db}, nil
}

// Reset drops and recreates both relations. It runs once at the start of
// every run: the store carries no state across runs and has no migration
// path. A failure after the drop can leave the store partially built; the
// remedy is to rerun from a clean state, not incremental repair.
func (db *DB) Reset() error {
	statements := []string{
		`DROP TABLE IF EXISTS stocks`,
		`CREATE TABLE stocks (
			SYMBOL TEXT,
			NO_SHARES TEXT,
			PURCHASE_PRICE TEXT,
			CURRENT_VALUE TEXT,
			PURCHASE_DATE TEXT,
			EARNINGS_LOSS TEXT,
			YEARLY_EARNING_LOSS TEXT,
			PURCHASE_ID TEXT,
			INVESTOR_ID TEXT
		)`,
		`DROP TABLE IF EXISTS AllStocks`,
		`CREATE TABLE AllStocks (
			Symbol VARCHAR,
			Date VARCHAR,
			Open REAL,
			High REAL,
			Low REAL,
			Close REAL,
			Volume INTEGER
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return &domain.StoreError{Op: "reset", Err: err}
		}
	}
	return nil
}

// Close closes the store connection.
func (db *DB) Close() error {
	if err := db.DB.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}
