package dbmeta

import "context"

// DatabaseManager defines the database lifecycle operations build-db needs.
type DatabaseManager interface {
	// Exists checks whether a database is present at config.Database on
	// the server config addresses.
	Exists(ctx context.Context, config *ConnectionConfig) (bool, error)

	// Create creates a new empty database described by config with the
	// page size and write mode of opts, and reports the parameters read
	// back from the server.
	Create(ctx context.Context, config *ConnectionConfig, opts CreateOptions) (DatabaseInfo, error)
}
