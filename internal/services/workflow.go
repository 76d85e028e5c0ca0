package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vvka-141/dbmeta/internal/catalog"
	"github.com/vvka-141/dbmeta/internal/db"
	"github.com/vvka-141/dbmeta/internal/files/filesystem"
	"github.com/vvka-141/dbmeta/internal/script"
	"github.com/vvka-141/dbmeta/pkg/dbmeta"
)

// ConnectorFactory builds the Connector for a resolved connection.
type ConnectorFactory func(*dbmeta.ConnectionConfig) (dbmeta.Connector, error)

// WorkflowService implements the Workflow interface.
// Thread-Safety: NOT safe for concurrent calls on the same instance.
// Create separate instances for concurrent workflows.
type WorkflowService struct {
	connectorFactory ConnectorFactory
	dbManager        dbmeta.DatabaseManager
	fileScanner      dbmeta.FileScanner
	fs               filesystem.FileSystemProvider
	logger           dbmeta.Logger
}

// NewWorkflowService creates a new WorkflowService with all dependencies injected.
//
// Panics on nil dependencies: these are programmer errors that should fail
// loudly at startup. Runtime conditions are returned as errors.
func NewWorkflowService(
	connectorFactory ConnectorFactory,
	dbManager dbmeta.DatabaseManager,
	fileScanner dbmeta.FileScanner,
	fsProvider filesystem.FileSystemProvider,
	logger dbmeta.Logger,
) *WorkflowService {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if dbManager == nil {
		panic("dbManager cannot be nil")
	}
	if fileScanner == nil {
		panic("fileScanner cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &WorkflowService{
		connectorFactory: connectorFactory,
		dbManager:        dbManager,
		fileScanner:      fileScanner,
		fs:               fsProvider,
		logger:           logger,
	}
}

// Build creates a new database and replays the scripts into it.
func (s *WorkflowService) Build(ctx context.Context, config dbmeta.BuildConfig) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	dbFile := config.DatabaseFile
	if dbFile == "" {
		dbFile = dbmeta.DefaultDatabaseFile
	}
	// Paths for a remote server are passed through as given; only a local
	// server shares this machine's working directory.
	local := db.IsLocalHost(config.Connection.Host)
	dbPath := filepath.Join(config.DatabaseDir, dbFile)
	if local {
		abs, err := filepath.Abs(dbPath)
		if err != nil {
			return fmt.Errorf("failed to resolve database path: %w", err)
		}
		dbPath = abs
	}

	connConfig := config.Connection.Clone()
	connConfig.Database = dbPath

	exists, err := s.dbManager.Exists(ctx, connConfig)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", dbmeta.ErrDatabaseExists, dbPath)
	}

	scripts, err := s.fileScanner.ListScripts(config.ScriptsDir)
	if err != nil {
		return err
	}
	s.logger.Verbose("Found %d script(s) in %s", len(scripts), config.ScriptsDir)

	if local {
		if err := s.fs.MkdirAll(filepath.Dir(dbPath)); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	s.logger.Info("Creating database: %s", dbPath)
	info, err := s.dbManager.Create(ctx, connConfig, config.Create)
	if err != nil {
		return err
	}
	s.logger.Verbose("Page size: %d, forced writes: %t", info.PageSize, info.ForcedWrites)

	if err := s.run(ctx, connConfig, func(conn dbmeta.DBConnection) error {
		return script.NewExecutor(script.NewSplitter(config.SplitMode), s.logger).ExecuteFiles(ctx, conn, scripts)
	}); err != nil {
		return err
	}

	s.logger.Success("Database built: %s", dbPath)
	return nil
}

// Export renders the catalog of an existing database as DDL scripts.
func (s *WorkflowService) Export(ctx context.Context, config dbmeta.ExportConfig) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	connConfig, err := resolveConnection(config.ConnectionString, config.Connection)
	if err != nil {
		return err
	}

	if err := s.run(ctx, connConfig, func(conn dbmeta.DBConnection) error {
		return catalog.NewExporter(catalog.NewReader(conn), s.fs, s.logger).Export(ctx, config.OutputDir)
	}); err != nil {
		return err
	}

	s.logger.Success("Scripts exported to %s", config.OutputDir)
	return nil
}

// Update applies the scripts to an existing database. Scripts are not
// checked for idempotency; a statement the database rejects stops the run.
func (s *WorkflowService) Update(ctx context.Context, config dbmeta.UpdateConfig) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	connConfig, err := resolveConnection(config.ConnectionString, config.Connection)
	if err != nil {
		return err
	}

	scripts, err := s.fileScanner.ListScripts(config.ScriptsDir)
	if err != nil {
		return err
	}
	s.logger.Verbose("Found %d script(s) in %s", len(scripts), config.ScriptsDir)

	if err := s.run(ctx, connConfig, func(conn dbmeta.DBConnection) error {
		return script.NewExecutor(script.NewSplitter(config.SplitMode), s.logger).ExecuteFiles(ctx, conn, scripts)
	}); err != nil {
		return err
	}

	s.logger.Success("Database updated")
	return nil
}

// run connects, calls fn on the connection and always closes it.
func (s *WorkflowService) run(ctx context.Context, connConfig *dbmeta.ConnectionConfig, fn func(dbmeta.DBConnection) error) error {
	connector, err := s.connectorFactory(connConfig)
	if err != nil {
		return fmt.Errorf("failed to create connector: %w", err)
	}

	s.logger.Verbose("Connecting to %s", db.Redact(connConfig))
	conn, err := connector.Connect(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			s.logger.Warning("Failed to close connection: %v", cerr)
		}
	}()

	return fn(conn)
}

func resolveConnection(connStr string, resolved *dbmeta.ConnectionConfig) (*dbmeta.ConnectionConfig, error) {
	if resolved != nil {
		return resolved.Clone(), nil
	}
	return db.ResolveConnectionString(connStr, nil, nil)
}

// Verify WorkflowService implements the Workflow interface at compile time
var _ dbmeta.Workflow = (*WorkflowService)(nil)
