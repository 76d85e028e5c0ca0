package dbmeta

import "time"

// Exit codes for semantic error classification.
//   - 0: Success
//   - 1: CLI usage error (missing arguments, invalid flags)
//   - 2+: Failures
const (
	ExitSuccess           = 0  // Workflow completed (or build skipped on conflict)
	ExitUsageError        = 1  // CLI usage error (missing args, invalid flags)
	ExitGeneralError      = 2  // Unknown or unclassified error
	ExitPanic             = 3  // Internal panic (unexpected crash)
	ExitConfigError       = 10 // Invalid configuration
	ExitConnectionError   = 11 // Failed to connect to database
	ExitExecutionFailed   = 13 // A script statement was rejected
	ExitScriptsNotFound   = 14 // Scripts directory missing or without .sql files
	ExitCatalogQueryError = 15 // A catalog query failed during export
)

const (
	// DefaultPageSize is the page size used when creating a new database.
	DefaultPageSize = 8192

	// DefaultDatabaseFile is the file name of the database created by build-db.
	DefaultDatabaseFile = "database.fdb"

	// DefaultHost and DefaultPort address a local Firebird server.
	DefaultHost = "localhost"
	DefaultPort = 3050

	// DefaultUser and DefaultPassword are the Firebird out-of-the-box credentials.
	DefaultUser     = "SYSDBA"
	DefaultPassword = "masterkey"

	// DefaultCharset is the connection character set.
	DefaultCharset = "UTF8"

	// DefaultTimeout guards a whole workflow against indefinite hangs.
	DefaultTimeout = 10 * time.Minute

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 10 * time.Second

	// DefaultRetryMultiplier is the default growth factor between retry delays.
	DefaultRetryMultiplier = 2.0

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3

	// MaxErrorPreviewLength is the maximum number of characters of a failed
	// statement shown in error messages.
	MaxErrorPreviewLength = 200

	// ScriptExtension is the extension of script files picked up by build-db and update-db.
	ScriptExtension = ".sql"
)
