// Package testinfra starts the throwaway database servers used by
// integration tests.
package testinfra

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	FirebirdImage    = "firebirdsql/firebird:5"
	FirebirdUser     = "SYSDBA"
	FirebirdPassword = "masterkey"
	FirebirdDatabase = "test.fdb"

	// FirebirdDataDir is the data directory inside the container. Databases
	// created by tests must live here so that the server can write them.
	FirebirdDataDir = "/var/lib/firebird/data"

	firebirdPort = "3050/tcp"
)

type FirebirdContainer struct {
	testcontainers.Container
	Host string
	Port int
}

// DatabasePath returns the server-side path of a database file in the
// container's data directory.
func (c *FirebirdContainer) DatabasePath(file string) string {
	return path.Join(FirebirdDataDir, file)
}

// ConnString returns a driver DSN for the named database file.
func (c *FirebirdContainer) ConnString(file string) string {
	return fmt.Sprintf("%s:%s@%s:%d/%s", FirebirdUser, FirebirdPassword, c.Host, c.Port, c.DatabasePath(file))
}

// StartFirebird starts a Firebird server with an empty FirebirdDatabase.
func StartFirebird(ctx context.Context) (*FirebirdContainer, error) {
	ctr, err := testcontainers.Run(ctx,
		FirebirdImage,
		testcontainers.WithExposedPorts(firebirdPort),
		testcontainers.WithEnv(map[string]string{
			"FIREBIRD_ROOT_PASSWORD": FirebirdPassword,
			"FIREBIRD_DATABASE":      FirebirdDatabase,
		}),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort(firebirdPort).WithStartupTimeout(90*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start firebird: %w", err)
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get container host: %w", err)
	}
	port, err := ctr.MappedPort(ctx, firebirdPort)
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	return &FirebirdContainer{Container: ctr, Host: host, Port: port.Int()}, nil
}
