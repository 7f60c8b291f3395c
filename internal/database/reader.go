package database

import "context"

// Row represents a single result row
type Row interface {
	Scan(dest ...any) error
}

// Rows represents multiple result rows.
// Callers must always call Close() when done, even on error.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close()
	Err() error
}

// Reader is the read-only connection interface the catalog layer talks to.
// It never imports the mysql package directly, which keeps the catalog
// queries testable against a fake.
type Reader interface {
	Ping(ctx context.Context) error
	Close()
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}
