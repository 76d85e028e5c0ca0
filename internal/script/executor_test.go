package script

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/dbmeta/internal/logging"
	"github.com/vvka-141/dbmeta/pkg/dbmeta"
)

// mockConnection records executed statements and fails on demand.
type mockConnection struct {
	executed []string
	execFunc func(sql string) error
}

func (m *mockConnection) Exec(_ context.Context, sql string, _ ...any) error {
	m.executed = append(m.executed, sql)
	if m.execFunc != nil {
		return m.execFunc(sql)
	}
	return nil
}

func (m *mockConnection) Query(_ context.Context, _ string, _ ...any) (dbmeta.Rows, error) {
	return nil, errors.New("not supported")
}

func (m *mockConnection) Close() error { return nil }

func newTestExecutor(mode Mode) *Executor {
	return NewExecutor(NewSplitter(mode), logging.NewNullLogger())
}

func TestExecute_StopsAtFirstFailure(t *testing.T) {
	dbErr := errors.New("Table unknown")
	conn := &mockConnection{execFunc: func(sql string) error {
		if sql == "S2" {
			return dbErr
		}
		return nil
	}}
	stmts := []dbmeta.Statement{{Text: "S1", Line: 1}, {Text: "S2", Line: 2}, {Text: "S3", Line: 3}}

	err := newTestExecutor(ModeTerminator).Execute(context.Background(), conn, "001_init.sql", stmts)

	require.Error(t, err)
	assert.Equal(t, []string{"S1", "S2"}, conn.executed, "statement 3 must never be attempted")
	assert.ErrorIs(t, err, dbmeta.ErrExecutionFailed)
	assert.ErrorIs(t, err, dbErr)

	var stmtErr *dbmeta.StatementError
	require.ErrorAs(t, err, &stmtErr)
	assert.Equal(t, 2, stmtErr.Index)
	assert.Equal(t, "S2", stmtErr.Statement)
	assert.Equal(t, "001_init.sql", stmtErr.File)
	assert.Equal(t, 2, stmtErr.Line)
}

func TestExecute_AllSucceed(t *testing.T) {
	conn := &mockConnection{}
	stmts := []dbmeta.Statement{{Text: "A"}, {Text: "B"}}

	err := newTestExecutor(ModeTerminator).Execute(context.Background(), conn, "x.sql", stmts)

	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, conn.executed)
}

func TestExecute_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	conn := &mockConnection{}

	err := newTestExecutor(ModeTerminator).Execute(ctx, conn, "x.sql", []dbmeta.Statement{{Text: "A"}})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, conn.executed)
}

func TestExecuteFiles_InOrderAndAbortsBatch(t *testing.T) {
	conn := &mockConnection{execFunc: func(sql string) error {
		if sql == "BAD" {
			return errors.New("syntax error")
		}
		return nil
	}}
	files := []dbmeta.ScriptFile{
		{Name: "001_a.sql", Content: "A1; A2;"},
		{Name: "002_b.sql", Content: "B1; BAD; B3;"},
		{Name: "003_c.sql", Content: "C1;"},
	}

	err := newTestExecutor(ModeTerminator).ExecuteFiles(context.Background(), conn, files)

	var stmtErr *dbmeta.StatementError
	require.ErrorAs(t, err, &stmtErr)
	assert.Equal(t, "002_b.sql", stmtErr.File)
	assert.Equal(t, 2, stmtErr.Index)
	assert.Equal(t, []string{"A1", "A2", "B1", "BAD"}, conn.executed)
}

func TestExecuteFiles_UsesConfiguredSplitter(t *testing.T) {
	files := []dbmeta.ScriptFile{{Name: "p.sql", Content: "SET TERM ^ ;\nCREATE PROCEDURE P AS BEGIN X; END^\nSET TERM ; ^"}}

	term := &mockConnection{}
	require.NoError(t, newTestExecutor(ModeTerminator).ExecuteFiles(context.Background(), term, files))
	assert.Len(t, term.executed, 1)

	simple := &mockConnection{}
	require.NoError(t, newTestExecutor(ModeSimple).ExecuteFiles(context.Background(), simple, files))
	assert.Len(t, simple.executed, 4)
}

func TestNewExecutor_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewExecutor(nil, logging.NewNullLogger()) })
	assert.Panics(t, func() { NewExecutor(NewSplitter(ModeSimple), nil) })
}
