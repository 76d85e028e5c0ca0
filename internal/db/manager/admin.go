package manager

import (
	"github.com/nakagami/firebirdsql"

	"github.com/vvka-141/dbmeta/internal/db"
	"github.com/vvka-141/dbmeta/pkg/dbmeta"
)

// ServiceAdmin runs Firebird service manager actions against database
// paths on one server.
type ServiceAdmin interface {
	// Backup writes a gbak backup of database to backupFile on the server.
	Backup(database, backupFile string) error

	// Restore replaces database with backupFile, rewriting it with pageSize.
	Restore(backupFile, database string, pageSize int) error

	// SetForcedWrites switches database between synchronous and
	// asynchronous writes.
	SetForcedWrites(database string, on bool) error
}

// AdminFactory builds the ServiceAdmin for the server config addresses.
type AdminFactory func(config *dbmeta.ConnectionConfig) (ServiceAdmin, error)

// serviceAdmin implements ServiceAdmin with the firebirdsql service managers.
type serviceAdmin struct {
	backup      *firebirdsql.BackupManager
	maintenance *firebirdsql.MaintenanceManager
}

// NewServiceAdmin connects service managers lazily; each action opens and
// closes its own service attachment.
func NewServiceAdmin(config *dbmeta.ConnectionConfig) (ServiceAdmin, error) {
	addr := db.ServiceAddress(config)
	opts := firebirdsql.GetDefaultServiceManagerOptions()

	backup, err := firebirdsql.NewBackupManager(addr, config.User, config.Password, opts)
	if err != nil {
		return nil, err
	}
	maintenance, err := firebirdsql.NewMaintenanceManager(addr, config.User, config.Password, opts)
	if err != nil {
		return nil, err
	}
	return &serviceAdmin{backup: backup, maintenance: maintenance}, nil
}

func (a *serviceAdmin) Backup(database, backupFile string) error {
	return a.backup.Backup(database, backupFile, firebirdsql.NewBackupOptions(), nil)
}

func (a *serviceAdmin) Restore(backupFile, database string, pageSize int) error {
	opts := firebirdsql.NewRestoreOptions(
		firebirdsql.WithReplace(),
		firebirdsql.WithPageSize(int32(pageSize)),
	)
	return a.backup.Restore(backupFile, database, opts, nil)
}

func (a *serviceAdmin) SetForcedWrites(database string, on bool) error {
	if on {
		return a.maintenance.SetWriteModeSync(database)
	}
	return a.maintenance.SetWriteModeAsync(database)
}

var _ ServiceAdmin = (*serviceAdmin)(nil)
