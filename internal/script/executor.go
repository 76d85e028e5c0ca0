package script

import (
	"context"
	"fmt"

	"github.com/vvka-141/dbmeta/pkg/dbmeta"
)

// Executor runs statements against an open connection, in order, stopping
// at the first one the database rejects. Nothing is rolled back: statements
// that succeeded before the failure stay applied.
type Executor struct {
	splitter *Splitter
	logger   dbmeta.Logger
}

// NewExecutor creates an executor that splits script files with splitter.
//
// Panics if splitter or logger is nil (programmer error).
func NewExecutor(splitter *Splitter, logger dbmeta.Logger) *Executor {
	if splitter == nil {
		panic("splitter cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Executor{splitter: splitter, logger: logger}
}

// Execute runs stmts on conn. file names the script the statements came
// from and is only used for reporting.
//
// A rejected statement is reported as *dbmeta.StatementError carrying its
// 1-based index; later statements are never attempted.
func (e *Executor) Execute(ctx context.Context, conn dbmeta.DBConnection, file string, stmts []dbmeta.Statement) error {
	for i, stmt := range stmts {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("execution of %s interrupted before statement #%d: %w", file, i+1, err)
		}

		e.logger.Verbose("  [%d/%d] line %d: %s", i+1, len(stmts), stmt.Line, dbmeta.Preview(stmt.Text))

		if err := conn.Exec(ctx, stmt.Text); err != nil {
			return &dbmeta.StatementError{
				File:      file,
				Index:     i + 1,
				Line:      stmt.Line,
				Statement: stmt.Text,
				Err:       err,
			}
		}
	}
	return nil
}

// ExecuteFiles splits and executes each file in the given order. The batch
// stops at the first failing file.
func (e *Executor) ExecuteFiles(ctx context.Context, conn dbmeta.DBConnection, files []dbmeta.ScriptFile) error {
	total := 0
	for _, f := range files {
		stmts := e.splitter.Split(f.Content)

		e.logger.Info("Executing: %s", f.Name)
		if len(stmts) == 0 {
			e.logger.Warning("%s contains no statements", f.Name)
		}

		if err := e.Execute(ctx, conn, f.Name, stmts); err != nil {
			return err
		}

		e.logger.Info("Completed: %s", f.Name)
		total += len(stmts)
	}

	e.logger.Verbose("Executed %d statement(s) from %d file(s)", total, len(files))
	return nil
}
