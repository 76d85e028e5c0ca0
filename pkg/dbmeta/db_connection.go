package dbmeta

import "context"

// DBConnection is the single open connection a workflow runs on.
// Implementations are not required to be safe for concurrent use; every
// workflow issues one statement at a time.
type DBConnection interface {
	// Exec executes one statement that returns no result set.
	Exec(ctx context.Context, sql string, args ...any) error

	// Query executes one query. The caller must Close the returned Rows
	// before issuing the next statement.
	Query(ctx context.Context, sql string, args ...any) (Rows, error)

	// Close releases the connection.
	Close() error
}

// Rows iterates a query result with typed column access.
// *sql.Rows satisfies this interface.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// Connector establishes database connections.
type Connector interface {
	// Connect opens a connection. The caller must Close it when done.
	Connect(ctx context.Context) (DBConnection, error)
}
