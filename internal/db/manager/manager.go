package manager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/vvka-141/dbmeta/internal/db"
	"github.com/vvka-141/dbmeta/internal/files/filesystem"
	"github.com/vvka-141/dbmeta/pkg/dbmeta"
)

const queryDatabaseInfo = "SELECT MON$PAGE_SIZE, MON$FORCED_WRITES FROM MON$DATABASE"

// driverPageSize is the page size firebirdsql_createdb always creates with;
// the driver ignores page size and forced writes settings in the DSN.
const driverPageSize = 4096

// backupSuffix names the temporary backup used to change the page size.
const backupSuffix = ".dbmeta.fbk"

// Manager implements dbmeta.DatabaseManager for Firebird databases.
type Manager struct {
	fs       filesystem.FileSystemProvider
	logger   dbmeta.Logger
	open     db.Opener
	newAdmin AdminFactory
}

// New creates a Manager. Local database paths are inspected through fsProvider.
func New(fsProvider filesystem.FileSystemProvider, logger dbmeta.Logger) *Manager {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Manager{fs: fsProvider, logger: logger, open: sql.Open, newAdmin: NewServiceAdmin}
}

// WithOpener returns a copy of the manager that opens pools with open.
func (m *Manager) WithOpener(open db.Opener) *Manager {
	clone := *m
	clone.open = open
	return &clone
}

// WithAdmin returns a copy of the manager that runs service actions
// through newAdmin.
func (m *Manager) WithAdmin(newAdmin AdminFactory) *Manager {
	clone := *m
	clone.newAdmin = newAdmin
	return &clone
}

// Exists checks whether a database is present at config.Database.
//
// For a local server the path is checked on the filesystem; a directory
// counts as present so that build-db never overwrites it. For a remote
// server the path is only meaningful to the server, so an attachment is
// attempted and a successful one means the database exists. An attachment
// failure means absent: if the server is unreachable, Create fails anyway.
func (m *Manager) Exists(ctx context.Context, config *dbmeta.ConnectionConfig) (bool, error) {
	if db.IsLocalHost(config.Host) {
		_, err := m.fs.Stat(config.Database)
		if err == nil {
			return true, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check database file %s: %w", config.Database, err)
	}

	sqlDB, err := db.OpenAndPing(ctx, m.open, db.DriverName, db.BuildDSN(config), config.ConnectTimeout)
	if err != nil {
		m.logger.Verbose("No database attachable at %s: %v", db.Redact(config), err)
		return false, nil
	}
	sqlDB.Close()
	return true, nil
}

// Create creates the database named by config.Database with the page size
// and write mode of opts, and returns the parameters read back from
// MON$DATABASE. A database that does not end up with the requested
// parameters is an error.
func (m *Manager) Create(ctx context.Context, config *dbmeta.ConnectionConfig, opts dbmeta.CreateOptions) (dbmeta.DatabaseInfo, error) {
	if err := opts.Validate(); err != nil {
		return dbmeta.DatabaseInfo{}, err
	}

	m.logger.Verbose("Creating database: %s", db.Redact(config))
	created, err := db.OpenAndPing(ctx, m.open, db.CreateDriverName, db.BuildDSN(config), config.ConnectTimeout)
	if err != nil {
		return dbmeta.DatabaseInfo{}, fmt.Errorf("failed to create database %s: %w", config.Database, db.WrapConnectionError(err, config))
	}
	// Service actions need the database detached.
	created.Close()

	admin, err := m.newAdmin(config)
	if err != nil {
		return dbmeta.DatabaseInfo{}, fmt.Errorf("failed to reach service manager at %s: %w", db.ServiceAddress(config), err)
	}

	if opts.PageSize != driverPageSize {
		if err := m.repage(config, admin, opts.PageSize); err != nil {
			return dbmeta.DatabaseInfo{}, err
		}
	}

	if err := admin.SetForcedWrites(config.Database, opts.ForcedWrites); err != nil {
		return dbmeta.DatabaseInfo{}, fmt.Errorf("failed to set forced writes of %s: %w", config.Database, err)
	}

	info, err := m.readInfo(ctx, config)
	if err != nil {
		return dbmeta.DatabaseInfo{}, err
	}
	if info.PageSize != opts.PageSize || info.ForcedWrites != opts.ForcedWrites {
		return info, fmt.Errorf("%w: %s has page size %d and forced writes %t, requested %d and %t",
			dbmeta.ErrCreateOptionsNotApplied, config.Database,
			info.PageSize, info.ForcedWrites, opts.PageSize, opts.ForcedWrites)
	}
	return info, nil
}

// repage rewrites the new, empty database with pageSize through a backup
// and restore on the server.
func (m *Manager) repage(config *dbmeta.ConnectionConfig, admin ServiceAdmin, pageSize int) error {
	backupFile := config.Database + backupSuffix
	m.logger.Verbose("Rewriting %s with page size %d", config.Database, pageSize)

	if err := admin.Backup(config.Database, backupFile); err != nil {
		return fmt.Errorf("failed to back up %s: %w", config.Database, err)
	}
	restoreErr := admin.Restore(backupFile, config.Database, pageSize)

	if db.IsLocalHost(config.Host) {
		if err := m.fs.Remove(backupFile); err != nil {
			m.logger.Warning("Failed to remove temporary backup %s: %v", backupFile, err)
		}
	} else {
		m.logger.Warning("Temporary backup %s was left on server %s", backupFile, config.Host)
	}

	if restoreErr != nil {
		return fmt.Errorf("failed to restore %s with page size %d: %w", config.Database, pageSize, restoreErr)
	}
	return nil
}

func (m *Manager) readInfo(ctx context.Context, config *dbmeta.ConnectionConfig) (dbmeta.DatabaseInfo, error) {
	sqlDB, err := db.OpenAndPing(ctx, m.open, db.DriverName, db.BuildDSN(config), config.ConnectTimeout)
	if err != nil {
		return dbmeta.DatabaseInfo{}, fmt.Errorf("failed to attach to new database %s: %w", config.Database, db.WrapConnectionError(err, config))
	}
	defer sqlDB.Close()

	var info dbmeta.DatabaseInfo
	var forcedWrites int
	if err := sqlDB.QueryRowContext(ctx, queryDatabaseInfo).Scan(&info.PageSize, &forcedWrites); err != nil {
		return dbmeta.DatabaseInfo{}, fmt.Errorf("failed to read parameters of database %s: %w", config.Database, err)
	}
	info.ForcedWrites = forcedWrites == 1
	return info, nil
}

// Verify Manager implements the DatabaseManager interface at compile time
var _ dbmeta.DatabaseManager = (*Manager)(nil)
