package db

import (
	"fmt"
	"os"

	"github.com/vvka-141/dbmeta/internal/config"
	"github.com/vvka-141/dbmeta/pkg/dbmeta"
)

// Environment variables consulted by the resolver.
const (
	EnvConnectionString = "DBMETA_CONNECTION_STRING"
	EnvUser             = "ISC_USER"
	EnvPassword         = "ISC_PASSWORD"
)

// ServerFlags represents the server parameters build-db accepts as flags.
// Zero values mean "not given".
type ServerFlags struct {
	Host     string
	Port     int
	User     string
	Password string
	Charset  string
}

// EnvVars represents the environment variables the resolver reads.
type EnvVars struct {
	ConnectionString string // DBMETA_CONNECTION_STRING
	User             string // ISC_USER, the Firebird client convention
	Password         string // ISC_PASSWORD
}

// LoadFromEnvironment reads the environment variables the resolver uses.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		ConnectionString: os.Getenv(EnvConnectionString),
		User:             os.Getenv(EnvUser),
		Password:         os.Getenv(EnvPassword),
	}
}

// ResolveConnectionString resolves the connection of export-scripts and
// update-db.
//
// The connection string comes from the flag, else DBMETA_CONNECTION_STRING.
// Credentials missing from the string are filled with
// ISC_USER/ISC_PASSWORD, then dbmeta.yaml, then the Firebird defaults.
func ResolveConnectionString(connStringFlag string, env *EnvVars, projectConfig *config.ProjectConfig) (*dbmeta.ConnectionConfig, error) {
	if env == nil {
		env = &EnvVars{}
	}

	connStr := connStringFlag
	if connStr == "" {
		connStr = env.ConnectionString
	}
	if connStr == "" {
		return nil, fmt.Errorf("--connection-string is required (or set $%s): %w", EnvConnectionString, dbmeta.ErrUsage)
	}

	cfg, err := ParseConnectionString(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %v: %w", err, dbmeta.ErrInvalidConfig)
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("connection string names no database: %w", dbmeta.ErrInvalidConfig)
	}

	var pc config.ConnectionConfig
	if projectConfig != nil {
		pc = projectConfig.Connection
	}
	cfg.User = firstNonEmpty(cfg.User, env.User, pc.User, dbmeta.DefaultUser)
	cfg.Password = firstNonEmpty(cfg.Password, env.Password, pc.Password, dbmeta.DefaultPassword)
	cfg.Role = firstNonEmpty(cfg.Role, pc.Role)

	return cfg, nil
}

// ResolveServerParams resolves the server build-db creates the database on.
// The database path itself is not part of the result.
//
// Precedence for each parameter:
//  1. CLI flag (highest priority)
//  2. Environment variable (user and password only)
//  3. dbmeta.yaml
//  4. Default value (lowest priority)
func ResolveServerParams(flags *ServerFlags, env *EnvVars, projectConfig *config.ProjectConfig) *dbmeta.ConnectionConfig {
	if flags == nil {
		flags = &ServerFlags{}
	}
	if env == nil {
		env = &EnvVars{}
	}
	var pc config.ConnectionConfig
	if projectConfig != nil {
		pc = projectConfig.Connection
	}

	cfg := &dbmeta.ConnectionConfig{
		Host:             firstNonEmpty(flags.Host, pc.Host, dbmeta.DefaultHost),
		User:             firstNonEmpty(flags.User, env.User, pc.User, dbmeta.DefaultUser),
		Password:         firstNonEmpty(flags.Password, env.Password, pc.Password, dbmeta.DefaultPassword),
		Charset:          firstNonEmpty(flags.Charset, pc.Charset, dbmeta.DefaultCharset),
		Role:             pc.Role,
		AdditionalParams: make(map[string]string),
	}

	switch {
	case flags.Port != 0:
		cfg.Port = flags.Port
	case pc.Port != 0:
		cfg.Port = pc.Port
	default:
		cfg.Port = dbmeta.DefaultPort
	}

	return cfg
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
