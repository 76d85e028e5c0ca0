package dbmeta

// Logger provides a pluggable logging interface for dbmeta operations.
// Implementations must be safe for concurrent use by multiple goroutines.
type Logger interface {
	// Verbose logs detailed diagnostic information.
	// Only logged when verbose mode is enabled.
	Verbose(format string, args ...interface{})

	// Info logs informational messages about normal operations.
	Info(format string, args ...interface{})

	// Success logs the completion of a step or workflow.
	Success(format string, args ...interface{})

	// Warning logs conditions that skip work without failing it.
	Warning(format string, args ...interface{})

	// Error logs error messages.
	Error(format string, args ...interface{})
}
