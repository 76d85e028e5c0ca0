package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/vvka-141/dbmeta/pkg/dbmeta"
)

type mockConnector struct {
	conn dbmeta.DBConnection
	err  error
}

func (m *mockConnector) Connect(_ context.Context) (dbmeta.DBConnection, error) {
	return m.conn, m.err
}

// mockConnection records executed statements. execFunc, when set, decides
// the result of each Exec.
type mockConnection struct {
	executed []string
	execFunc func(sql string) error
	closed   bool
}

func (m *mockConnection) Exec(_ context.Context, sql string, _ ...any) error {
	m.executed = append(m.executed, sql)
	if m.execFunc != nil {
		return m.execFunc(sql)
	}
	return nil
}

func (m *mockConnection) Query(_ context.Context, sql string, _ ...any) (dbmeta.Rows, error) {
	return nil, fmt.Errorf("unexpected query: %s", sql)
}

func (m *mockConnection) Close() error {
	m.closed = true
	return nil
}

type mockFileScanner struct {
	scripts []dbmeta.ScriptFile
	err     error
	calls   int
}

func (m *mockFileScanner) ListScripts(_ string) ([]dbmeta.ScriptFile, error) {
	m.calls++
	return m.scripts, m.err
}

type mockDatabaseManager struct {
	existsResult bool
	existsErr    error
	info         dbmeta.DatabaseInfo
	createErr    error

	existsPath   string
	existsHost   string
	createConfig *dbmeta.ConnectionConfig
	createOpts   dbmeta.CreateOptions
	createCalls  int
}

func (m *mockDatabaseManager) Exists(_ context.Context, config *dbmeta.ConnectionConfig) (bool, error) {
	m.existsPath = config.Database
	m.existsHost = config.Host
	return m.existsResult, m.existsErr
}

func (m *mockDatabaseManager) Create(_ context.Context, config *dbmeta.ConnectionConfig, opts dbmeta.CreateOptions) (dbmeta.DatabaseInfo, error) {
	m.createCalls++
	m.createConfig = config
	m.createOpts = opts
	return m.info, m.createErr
}

// mockLogger keeps warnings so tests can assert on them.
type mockLogger struct {
	mu       sync.Mutex
	warnings []string
}

func (m *mockLogger) Verbose(_ string, _ ...interface{}) {}
func (m *mockLogger) Info(_ string, _ ...interface{})    {}
func (m *mockLogger) Success(_ string, _ ...interface{}) {}
func (m *mockLogger) Error(_ string, _ ...interface{})   {}

func (m *mockLogger) Warning(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warnings = append(m.warnings, fmt.Sprintf(format, args...))
}
