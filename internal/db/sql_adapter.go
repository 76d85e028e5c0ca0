package db

import (
	"context"
	"database/sql"

	"github.com/vvka-141/dbmeta/pkg/dbmeta"
)

// SQLAdapter adapts *sql.DB to implement the dbmeta.DBConnection interface.
// This decouples the workflows from database/sql and the driver.
//
// The wrapped pool is limited to one open connection, so statements run
// strictly one after another on the same attachment.
type SQLAdapter struct {
	db *sql.DB
}

// NewSQLAdapter creates a new SQLAdapter wrapping db.
func NewSQLAdapter(db *sql.DB) *SQLAdapter {
	return &SQLAdapter{db: db}
}

// Exec executes a statement without returning any rows.
func (a *SQLAdapter) Exec(ctx context.Context, query string, args ...any) error {
	_, err := a.db.ExecContext(ctx, query, args...)
	return err
}

// Query executes a query; the caller must close the returned rows.
func (a *SQLAdapter) Query(ctx context.Context, query string, args ...any) (dbmeta.Rows, error) {
	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Close closes the underlying pool.
func (a *SQLAdapter) Close() error {
	return a.db.Close()
}

// Verify SQLAdapter implements DBConnection at compile time
var _ dbmeta.DBConnection = (*SQLAdapter)(nil)
