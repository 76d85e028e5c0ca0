package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/vvka-141/dbmeta/pkg/dbmeta"
)

var _ dbmeta.Logger = (*ConsoleLogger)(nil)

// timestampLayout is the prefix of every line, e.g. [14:03:59].
const timestampLayout = "15:04:05"

// ConsoleLogger writes log messages to stderr as
// "[HH:MM:SS] [LEVEL] message".
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	verbose bool
	color   bool
	out     io.Writer
	now     func() time.Time
	mu      sync.Mutex
}

// NewConsoleLogger creates a new ConsoleLogger writing to stderr.
// If verbose is true, Verbose() calls will produce output.
// If verbose is false, Verbose() calls are no-ops.
// Level tags are colored when stderr is a terminal.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return &ConsoleLogger{
		verbose: verbose,
		color:   ColorEnabled(os.Stderr),
		out:     os.Stderr,
		now:     time.Now,
	}
}

// NewWriterLogger creates a ConsoleLogger writing uncolored lines to w.
func NewWriterLogger(w io.Writer, verbose bool) *ConsoleLogger {
	return &ConsoleLogger{
		verbose: verbose,
		out:     w,
		now:     time.Now,
	}
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write(levelVerbose, format, args)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write(levelInfo, format, args)
}

// Success logs the completion of a step or workflow.
func (l *ConsoleLogger) Success(format string, args ...interface{}) {
	l.write(levelSuccess, format, args)
}

// Warning logs conditions that skip work without failing it.
func (l *ConsoleLogger) Warning(format string, args ...interface{}) {
	l.write(levelWarning, format, args)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write(levelError, format, args)
}

func (l *ConsoleLogger) write(lv level, format string, args []interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[%s] %s %s\n", l.now().Format(timestampLayout), lv.tag(l.color), msg)
}
