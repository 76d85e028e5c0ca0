package dbmeta

import "context"

// Workflow is the main interface for the three schema lifecycle operations.
// Each call is a one-shot linear pipeline that stops at the first failure.
type Workflow interface {
	// Build creates a new database and replays the scripts into it.
	// Returns ErrDatabaseExists without side effects if the database is already there.
	Build(ctx context.Context, config BuildConfig) error

	// Export renders the catalog of an existing database as DDL scripts.
	Export(ctx context.Context, config ExportConfig) error

	// Update applies the scripts to an existing database.
	Update(ctx context.Context, config UpdateConfig) error
}
