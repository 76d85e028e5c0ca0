// Package testing provides helpers for integration tests that need a
// running Firebird server.
package testing

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/vvka-141/dbmeta/internal/db"
	"github.com/vvka-141/dbmeta/internal/db/manager"
	"github.com/vvka-141/dbmeta/internal/files/filesystem"
	"github.com/vvka-141/dbmeta/internal/files/scanner"
	"github.com/vvka-141/dbmeta/internal/logging"
	"github.com/vvka-141/dbmeta/internal/services"
	"github.com/vvka-141/dbmeta/internal/testinfra"
	"github.com/vvka-141/dbmeta/pkg/dbmeta"
)

// EnvTestDSN names an existing test database and disables the container.
const EnvTestDSN = "DBMETA_TEST_DSN"

var (
	testContainerOnce sync.Once
	testContainer     *testinfra.FirebirdContainer
	testContainerErr  error
)

func getOrStartTestContainer() (*testinfra.FirebirdContainer, error) {
	testContainerOnce.Do(func() {
		testContainer, testContainerErr = testinfra.StartFirebird(context.Background())
	})
	return testContainer, testContainerErr
}

// GetTestConnectionString returns the test database connection string.
// Priority: DBMETA_TEST_DSN env var > auto-started testcontainer > skip test.
func GetTestConnectionString(t *testing.T) string {
	t.Helper()

	if connString := os.Getenv(EnvTestDSN); connString != "" {
		return connString
	}

	container, err := getOrStartTestContainer()
	if err != nil {
		t.Skipf("%s not set and Docker unavailable: %v", EnvTestDSN, err)
	}
	return container.ConnString(testinfra.FirebirdDatabase)
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireDatabase combines SkipIfShort and GetTestConnectionString and
// returns the parsed connection of the test database.
func RequireDatabase(t *testing.T) *dbmeta.ConnectionConfig {
	t.Helper()

	SkipIfShort(t)
	cfg, err := db.ResolveConnectionString(GetTestConnectionString(t), nil, nil)
	if err != nil {
		t.Fatalf("invalid test connection string: %v", err)
	}
	return cfg
}

// Connect opens a connection to cfg that is closed when the test ends.
func Connect(t *testing.T, cfg *dbmeta.ConnectionConfig) dbmeta.DBConnection {
	t.Helper()

	connector, err := db.NewConnector(cfg, nil)
	if err != nil {
		t.Fatalf("Failed to create connector: %v", err)
	}
	conn, err := connector.Connect(context.Background())
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// NewTestWorkflow creates a WorkflowService wired to real connections and
// the local filesystem, logging nothing.
func NewTestWorkflow(t *testing.T) *services.WorkflowService {
	t.Helper()
	return NewTestWorkflowFS(t, filesystem.NewOSFileSystem())
}

// NewTestWorkflowFS is NewTestWorkflow over fsProvider. Tests against a
// containerized server pass an in-memory filesystem so that local database
// checks and directory creation do not touch this machine.
func NewTestWorkflowFS(t *testing.T, fsProvider filesystem.FileSystemProvider) *services.WorkflowService {
	t.Helper()

	logger := logging.NewNullLogger()
	connectorFactory := func(cfg *dbmeta.ConnectionConfig) (dbmeta.Connector, error) {
		return db.NewConnector(cfg, logger)
	}
	return services.NewWorkflowService(
		connectorFactory,
		manager.New(fsProvider, logger),
		scanner.NewScanner(fsProvider),
		fsProvider,
		logger,
	)
}

// DatabaseInfo reads the page size and write mode of the attached database.
func DatabaseInfo(t *testing.T, conn dbmeta.DBConnection) dbmeta.DatabaseInfo {
	t.Helper()

	rows, err := conn.Query(context.Background(), "SELECT MON$PAGE_SIZE, MON$FORCED_WRITES FROM MON$DATABASE")
	if err != nil {
		t.Fatalf("Failed to query MON$DATABASE: %v", err)
	}
	defer rows.Close()

	var info dbmeta.DatabaseInfo
	var forcedWrites int
	if !rows.Next() {
		t.Fatalf("MON$DATABASE returned no row: %v", rows.Err())
	}
	if err := rows.Scan(&info.PageSize, &forcedWrites); err != nil {
		t.Fatalf("Failed to scan MON$DATABASE: %v", err)
	}
	info.ForcedWrites = forcedWrites == 1
	return info
}
