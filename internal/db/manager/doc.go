// Package manager provides database lifecycle operations for Firebird.
//
// Firebird databases are single files owned by the server. The manager
// checks whether a database is already present, either on the local
// filesystem or, for remote servers, by attaching to it. New databases are
// created through the driver's create-on-connect mode. That mode always
// uses a 4096-byte page and forced writes, so other settings are applied
// afterwards through the server's service manager: a backup and restore
// rewrites the empty database with the requested page size, and the write
// mode is switched in place. MON$DATABASE is read last to confirm both.
//
// # Example Usage
//
//	mgr := manager.New(filesystem.NewOSFileSystem(), logger)
//
//	exists, err := mgr.Exists(ctx, config)
//
//	info, err := mgr.Create(ctx, config, dbmeta.DefaultCreateOptions())
//
// # Thread Safety
//
// Manager holds no mutable state and is safe for concurrent use when the
// injected filesystem is.
package manager
