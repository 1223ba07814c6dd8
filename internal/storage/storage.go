package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
)

// Mode selects how the underlying SQLite file is opened. The values
// map directly onto SQLite URI open modes.
type Mode string

const (
	// ModeReadOnly opens an existing result file for reading.
	ModeReadOnly Mode = "ro"
	// ModeReadWrite opens an existing result file for writing.
	ModeReadWrite Mode = "rw"
	// modeCreate opens a result file, creating it if missing. Only
	// Create uses it.
	modeCreate Mode = "rwc"
)

// TimeLayout is the fixed format of the metadata created/modified
// columns.
const TimeLayout = "2006-01-02 15:04:05"

// DB is an exclusively-owned connection to one result file. In a
// writable mode all mutations ride a single long-lived transaction;
// nothing reaches durable storage until Commit. The connection must be
// released with Close.
type DB struct {
	db *sql.DB
	tx *sql.Tx // open write transaction, nil in read-only mode
}

// querier is the common surface of *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func (s *DB) querier() querier {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

// Open opens the result file at path. In ModeReadWrite the write
// transaction is started immediately.
func Open(ctx context.Context, path string, mode Mode) (*DB, error) {
	return open(ctx, path, mode)
}

func open(ctx context.Context, path string, mode Mode) (*DB, error) {
	db, err := sql.Open(DriverName, fmt.Sprintf("file:%s?mode=%s", path, mode))
	if err != nil {
		return nil, err
	}

	// Single connection: the handle owns the file exclusively and the
	// write transaction must see every statement.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Forces the connection open so a missing or unreadable file fails
	// here rather than on the first query. Foreign keys stay unenforced:
	// BinDiff writes the metadata row before the file rows it references.
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &DB{db: db}
	if mode == ModeReadWrite {
		if err := s.begin(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return s, nil
}

// Create creates a fresh result file at path, truncating any previous
// content, and installs the schema with both algorithm lookup tables
// populated. The returned DB has its write transaction open.
func Create(ctx context.Context, path string) (*DB, error) {
	if err := truncate(path); err != nil {
		return nil, err
	}

	s, err := open(ctx, path, modeCreate)
	if err != nil {
		return nil, err
	}

	// Schema installation must finish before the write transaction
	// starts: with a single connection, a statement issued outside an
	// open transaction would wait on it forever.
	if err := s.installSchema(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	if err := s.begin(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func truncate(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return f.Close()
}

func (s *DB) begin(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	s.tx = tx
	return nil
}

// Commit flushes all pending writes to durable storage and opens a new
// transaction for subsequent ones. No-op on a read-only handle.
func (s *DB) Commit(ctx context.Context) error {
	if s.tx == nil {
		return nil
	}
	if err := s.tx.Commit(); err != nil {
		return err
	}
	s.tx = nil
	return s.begin(ctx)
}

// Close releases the connection. Writes not committed are discarded,
// matching the engine's behavior when a connection with an open
// transaction goes away.
func (s *DB) Close() error {
	if s.tx != nil {
		_ = s.tx.Rollback()
		s.tx = nil
	}
	return s.db.Close()
}
