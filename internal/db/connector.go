package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/nakagami/firebirdsql" // registers the firebirdsql and firebirdsql_createdb drivers
	"github.com/vvka-141/dbmeta/internal/retry"
	"github.com/vvka-141/dbmeta/pkg/dbmeta"
)

const (
	// DriverName is the database/sql driver used for connections.
	DriverName = "firebirdsql"

	// CreateDriverName is the database/sql driver that creates the database
	// named in the DSN when it first connects.
	CreateDriverName = "firebirdsql_createdb"
)

// Opener opens a database/sql pool; sql.Open in production, sqlmock in tests.
type Opener func(driverName, dsn string) (*sql.DB, error)

// StandardConnector implements the Connector interface for user/password
// authentication with automatic retry on transient failures.
type StandardConnector struct {
	config        *dbmeta.ConnectionConfig
	retryExecutor *retry.Executor
	open          Opener
}

// NewStandardConnector creates a new StandardConnector with the given configuration.
// Retry behavior uses dbmeta defaults: DefaultRetryMaxAttempts attempts,
// exponential backoff starting at DefaultRetryInitialDelay, max DefaultRetryMaxDelay.
// Retries are reported through logger when it is not nil.
func NewStandardConnector(config *dbmeta.ConnectionConfig, logger dbmeta.Logger) *StandardConnector {
	strategy := retry.NewExponentialBackoff(dbmeta.DefaultRetryMaxAttempts,
		retry.WithInitialDelay(dbmeta.DefaultRetryInitialDelay),
		retry.WithMaxDelay(dbmeta.DefaultRetryMaxDelay),
		retry.WithMultiplier(dbmeta.DefaultRetryMultiplier),
	)
	executor := retry.NewExecutor(retry.NewFirebirdErrorClassifier(), strategy)
	if logger != nil {
		executor = executor.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Warning("Connection attempt %d failed, retrying in %s: %v", attempt+1, delay.Round(time.Millisecond), err)
		})
	}

	return &StandardConnector{
		config:        config,
		retryExecutor: executor,
		open:          sql.Open,
	}
}

// WithOpener returns a copy of the connector that opens pools with open.
func (c *StandardConnector) WithOpener(open Opener) *StandardConnector {
	clone := *c
	clone.open = open
	return &clone
}

// Connect opens a single-connection pool and verifies it with a ping.
func (c *StandardConnector) Connect(ctx context.Context) (dbmeta.DBConnection, error) {
	var db *sql.DB
	dsn := BuildDSN(c.config)

	err := c.retryExecutor.Execute(ctx, func(ctx context.Context) error {
		var err error
		db, err = OpenAndPing(ctx, c.open, DriverName, dsn, c.config.ConnectTimeout)
		if err != nil {
			return WrapConnectionError(err, c.config)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return NewSQLAdapter(db), nil
}

// OpenAndPing opens a pool limited to one connection and pings it,
// bounding the ping by timeout when it is positive.
func OpenAndPing(ctx context.Context, open Opener, driverName, dsn string, timeout time.Duration) (*sql.DB, error) {
	db, err := open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pingCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// NewConnector creates the Connector for config.
func NewConnector(config *dbmeta.ConnectionConfig, logger dbmeta.Logger) (dbmeta.Connector, error) {
	if config == nil {
		return nil, fmt.Errorf("connection config is nil: %w", dbmeta.ErrInvalidConfig)
	}
	if config.Database == "" {
		return nil, fmt.Errorf("connection string names no database: %w", dbmeta.ErrInvalidConfig)
	}
	return NewStandardConnector(config, logger), nil
}

// WrapConnectionError wraps raw driver errors with actionable guidance.
// The result matches dbmeta.ErrConnectionFailed and unwraps to err.
func WrapConnectionError(err error, config *dbmeta.ConnectionConfig) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`%w: connection refused to %s

Possible causes:
  - Firebird server is not running
  - Wrong host or port (default port is 3050)
  - Firewall blocking the connection

Original error: %w`, dbmeta.ErrConnectionFailed, addr, err)

	case strings.Contains(errStr, "no such host"):
		return fmt.Errorf(`%w: cannot resolve host "%s"

Possible causes:
  - Hostname is misspelled
  - DNS is not configured or reachable

Original error: %w`, dbmeta.ErrConnectionFailed, config.Host, err)

	case strings.Contains(errStr, "user name and password are not defined"):
		return fmt.Errorf(`%w: authentication failed for user "%s"

Possible causes:
  - Wrong user or password (check $ISC_USER and $ISC_PASSWORD)
  - User is not defined in the security database

Original error: %w`, dbmeta.ErrConnectionFailed, config.User, err)

	case strings.Contains(errStr, "i/o error") || strings.Contains(errStr, "no such file"):
		return fmt.Errorf(`%w: database "%s" cannot be opened on %s

Possible causes:
  - The path is wrong or relative to a different directory on the server
  - The server process lacks access to the file

Original error: %w`, dbmeta.ErrConnectionFailed, config.Database, addr, err)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out") || strings.Contains(errStr, "deadline exceeded"):
		return fmt.Errorf(`%w: connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Firewall silently dropping packets
  - Wrong host or port

Original error: %w`, dbmeta.ErrConnectionFailed, addr, err)

	default:
		return fmt.Errorf("%w: failed to connect to database: %w", dbmeta.ErrConnectionFailed, err)
	}
}
