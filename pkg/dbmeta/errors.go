package dbmeta

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
var (
	// ErrUsage indicates a missing or malformed command-line argument.
	ErrUsage = errors.New("usage error")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrDatabaseExists indicates build-db found a database at the target location.
	// It is a conflict, not a failure: nothing was modified.
	ErrDatabaseExists = errors.New("database already exists")

	// ErrScriptsNotFound indicates the scripts directory is missing or has no .sql files.
	ErrScriptsNotFound = errors.New("scripts not found")

	// ErrExecutionFailed indicates the database rejected a script statement.
	ErrExecutionFailed = errors.New("execution failed")

	// ErrCatalogQuery indicates a metadata query failed during export.
	ErrCatalogQuery = errors.New("catalog query failed")

	// ErrConnectionFailed indicates database connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrCreateOptionsNotApplied indicates a new database did not end up
	// with the requested page size or write mode.
	ErrCreateOptionsNotApplied = errors.New("create options not applied")
)

// StatementError reports the statement the database rejected.
// It matches ErrExecutionFailed with errors.Is and unwraps to the driver error.
type StatementError struct {
	File      string // script file name, empty for ad-hoc statement lists
	Index     int    // 1-based position of the statement in its script
	Line      int    // 1-based source line where the statement starts
	Statement string
	Err       error
}

func (e *StatementError) Error() string {
	var b strings.Builder
	b.WriteString("statement")
	if e.Index > 0 {
		fmt.Fprintf(&b, " #%d", e.Index)
	}
	if e.File != "" {
		fmt.Fprintf(&b, " in %s", e.File)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", e.Line)
	}
	fmt.Fprintf(&b, " failed: %v\n%s", e.Err, Preview(e.Statement))
	return b.String()
}

func (e *StatementError) Unwrap() error { return e.Err }

// Is reports ErrExecutionFailed as a match.
func (e *StatementError) Is(target error) bool { return target == ErrExecutionFailed }

// CatalogError reports a failed catalog query for one export artifact.
type CatalogError struct {
	Artifact Artifact
	Object   string // object whose sub-query failed, empty for the top-level query
	Err      error
}

func (e *CatalogError) Error() string {
	if e.Object != "" {
		return fmt.Sprintf("failed to read %s (%s): %v", e.Artifact, e.Object, e.Err)
	}
	return fmt.Sprintf("failed to read %s: %v", e.Artifact, e.Err)
}

func (e *CatalogError) Unwrap() error { return e.Err }

// Is reports ErrCatalogQuery as a match.
func (e *CatalogError) Is(target error) bool { return target == ErrCatalogQuery }

// Preview shortens a statement for error output.
func Preview(statement string) string {
	runes := []rune(statement)
	if len(runes) <= MaxErrorPreviewLength {
		return statement
	}
	return string(runes[:MaxErrorPreviewLength]) + "..."
}

// usageErrorPatterns are the messages cobra produces for malformed invocations.
var usageErrorPatterns = []string{
	"unknown command",
	"unknown flag",
	"unknown shorthand flag",
	"required flag",
	"invalid argument",
	"accepts ",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors and for the build conflict,
// semantic codes for known errors, and ExitGeneralError for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrDatabaseExists):
		return ExitSuccess
	case errors.Is(err, ErrUsage):
		return ExitUsageError
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrScriptsNotFound):
		return ExitScriptsNotFound
	case errors.Is(err, ErrExecutionFailed):
		return ExitExecutionFailed
	case errors.Is(err, ErrCatalogQuery):
		return ExitCatalogQueryError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	}

	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
