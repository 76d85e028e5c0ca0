package dbmeta_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vvka-141/dbmeta/pkg/dbmeta"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, dbmeta.ExitSuccess},
		{"build conflict", fmt.Errorf("build skipped: %w", dbmeta.ErrDatabaseExists), dbmeta.ExitSuccess},
		{"usage sentinel", fmt.Errorf("missing --db-dir: %w", dbmeta.ErrUsage), dbmeta.ExitUsageError},
		{"unknown flag", errors.New("unknown flag: --foo"), dbmeta.ExitUsageError},
		{"unknown command", errors.New(`unknown command "bogus" for "dbmeta"`), dbmeta.ExitUsageError},
		{"required flag", errors.New(`required flag(s) "db-dir" not set`), dbmeta.ExitUsageError},
		{"invalid argument", errors.New(`invalid argument "abc" for "--page-size"`), dbmeta.ExitUsageError},
		{"config", fmt.Errorf("bad: %w", dbmeta.ErrInvalidConfig), dbmeta.ExitConfigError},
		{"scripts not found", fmt.Errorf("x: %w", dbmeta.ErrScriptsNotFound), dbmeta.ExitScriptsNotFound},
		{"statement error", &dbmeta.StatementError{Statement: "X", Err: errors.New("boom")}, dbmeta.ExitExecutionFailed},
		{"catalog error", &dbmeta.CatalogError{Artifact: dbmeta.ArtifactTables, Err: errors.New("boom")}, dbmeta.ExitCatalogQueryError},
		{"connection failed", dbmeta.ErrConnectionFailed, dbmeta.ExitConnectionError},
		{"connection refused text", errors.New("dial tcp: connection refused"), dbmeta.ExitConnectionError},
		{"general error", errors.New("something went wrong"), dbmeta.ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dbmeta.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestStatementError(t *testing.T) {
	cause := errors.New("Table unknown FOO")
	err := error(&dbmeta.StatementError{
		File:      "002_tables.sql",
		Index:     2,
		Line:      7,
		Statement: "INSERT INTO FOO VALUES (1)",
		Err:       cause,
	})

	if !errors.Is(err, dbmeta.ErrExecutionFailed) {
		t.Error("StatementError should match ErrExecutionFailed")
	}
	if !errors.Is(err, cause) {
		t.Error("StatementError should unwrap to the driver error")
	}

	msg := err.Error()
	for _, want := range []string{"#2", "002_tables.sql", "line 7", "Table unknown FOO", "INSERT INTO FOO VALUES (1)"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message %q does not contain %q", msg, want)
		}
	}
}

func TestCatalogError(t *testing.T) {
	cause := errors.New("no permission")
	err := error(&dbmeta.CatalogError{Artifact: dbmeta.ArtifactProcedures, Object: "GET_USER", Err: cause})

	if !errors.Is(err, dbmeta.ErrCatalogQuery) {
		t.Error("CatalogError should match ErrCatalogQuery")
	}
	if !errors.Is(err, cause) {
		t.Error("CatalogError should unwrap to the driver error")
	}
	if got := err.Error(); got != "failed to read procedures (GET_USER): no permission" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestPreview(t *testing.T) {
	short := "SELECT 1 FROM RDB$DATABASE"
	if got := dbmeta.Preview(short); got != short {
		t.Errorf("short statement changed: %q", got)
	}

	long := strings.Repeat("x", dbmeta.MaxErrorPreviewLength+50)
	got := dbmeta.Preview(long)
	if len(got) != dbmeta.MaxErrorPreviewLength+3 || !strings.HasSuffix(got, "...") {
		t.Errorf("long statement not truncated: len=%d", len(got))
	}
}
