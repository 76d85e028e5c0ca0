package db

import (
	"errors"
	"testing"

	"github.com/vvka-141/dbmeta/internal/config"
	"github.com/vvka-141/dbmeta/pkg/dbmeta"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv(EnvConnectionString, "localhost:/db/app.fdb")
	t.Setenv(EnvUser, "APP")
	t.Setenv(EnvPassword, "secret")

	env := LoadFromEnvironment()

	if env.ConnectionString != "localhost:/db/app.fdb" {
		t.Errorf("ConnectionString = %q", env.ConnectionString)
	}
	if env.User != "APP" || env.Password != "secret" {
		t.Errorf("credentials = %q/%q, want APP/secret", env.User, env.Password)
	}
}

func TestResolveConnectionString(t *testing.T) {
	yaml := &config.ProjectConfig{
		Connection: config.ConnectionConfig{User: "YAMLUSER", Password: "yamlpass", Role: "RDB$ADMIN"},
	}

	tests := []struct {
		name         string
		flag         string
		env          *EnvVars
		pc           *config.ProjectConfig
		wantDatabase string
		wantUser     string
		wantPassword string
		wantRole     string
		wantErr      error
	}{
		{
			name:         "flag wins over environment",
			flag:         "SYSDBA:masterkey@fb:3050//data/flag.fdb",
			env:          &EnvVars{ConnectionString: "localhost:/data/env.fdb"},
			wantDatabase: "/data/flag.fdb",
			wantUser:     "SYSDBA",
			wantPassword: "masterkey",
		},
		{
			name:         "environment used when flag empty",
			env:          &EnvVars{ConnectionString: "localhost:/data/env.fdb"},
			wantDatabase: "/data/env.fdb",
			wantUser:     dbmeta.DefaultUser,
			wantPassword: dbmeta.DefaultPassword,
		},
		{
			name:         "ISC credentials fill missing user",
			flag:         "localhost:/data/app.fdb",
			env:          &EnvVars{User: "ISCUSER", Password: "iscpass"},
			pc:           yaml,
			wantDatabase: "/data/app.fdb",
			wantUser:     "ISCUSER",
			wantPassword: "iscpass",
			wantRole:     "RDB$ADMIN",
		},
		{
			name:         "project config fills credentials after environment",
			flag:         "localhost:/data/app.fdb",
			pc:           yaml,
			wantDatabase: "/data/app.fdb",
			wantUser:     "YAMLUSER",
			wantPassword: "yamlpass",
			wantRole:     "RDB$ADMIN",
		},
		{
			name:    "missing connection string is a usage error",
			wantErr: dbmeta.ErrUsage,
		},
		{
			name:    "unparseable string",
			flag:    "firebird://host:notaport/db.fdb",
			wantErr: dbmeta.ErrInvalidConfig,
		},
		{
			name:    "no database",
			flag:    "DataSource=localhost;Port=3050",
			wantErr: dbmeta.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ResolveConnectionString(tt.flag, tt.env, tt.pc)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Database != tt.wantDatabase {
				t.Errorf("Database = %q, want %q", cfg.Database, tt.wantDatabase)
			}
			if cfg.User != tt.wantUser {
				t.Errorf("User = %q, want %q", cfg.User, tt.wantUser)
			}
			if cfg.Password != tt.wantPassword {
				t.Errorf("Password = %q, want %q", cfg.Password, tt.wantPassword)
			}
			if cfg.Role != tt.wantRole {
				t.Errorf("Role = %q, want %q", cfg.Role, tt.wantRole)
			}
		})
	}
}

func TestResolveServerParams(t *testing.T) {
	pc := &config.ProjectConfig{
		Connection: config.ConnectionConfig{
			Host:     "yamlhost",
			Port:     3051,
			User:     "YAMLUSER",
			Password: "yamlpass",
			Charset:  "WIN1252",
		},
	}

	t.Run("defaults", func(t *testing.T) {
		cfg := ResolveServerParams(nil, nil, nil)
		if cfg.Host != dbmeta.DefaultHost || cfg.Port != dbmeta.DefaultPort {
			t.Errorf("address = %s:%d", cfg.Host, cfg.Port)
		}
		if cfg.User != dbmeta.DefaultUser || cfg.Password != dbmeta.DefaultPassword {
			t.Errorf("credentials = %s/%s", cfg.User, cfg.Password)
		}
		if cfg.Charset != dbmeta.DefaultCharset {
			t.Errorf("Charset = %q", cfg.Charset)
		}
		if cfg.Database != "" {
			t.Errorf("Database = %q, want empty", cfg.Database)
		}
	})

	t.Run("project config over defaults", func(t *testing.T) {
		cfg := ResolveServerParams(&ServerFlags{}, &EnvVars{}, pc)
		if cfg.Host != "yamlhost" || cfg.Port != 3051 || cfg.Charset != "WIN1252" {
			t.Errorf("got %s:%d %s", cfg.Host, cfg.Port, cfg.Charset)
		}
		if cfg.User != "YAMLUSER" {
			t.Errorf("User = %q", cfg.User)
		}
	})

	t.Run("environment over project config for credentials", func(t *testing.T) {
		cfg := ResolveServerParams(nil, &EnvVars{User: "ISCUSER", Password: "iscpass"}, pc)
		if cfg.User != "ISCUSER" || cfg.Password != "iscpass" {
			t.Errorf("credentials = %s/%s", cfg.User, cfg.Password)
		}
		if cfg.Host != "yamlhost" {
			t.Errorf("Host = %q", cfg.Host)
		}
	})

	t.Run("flags win", func(t *testing.T) {
		flags := &ServerFlags{Host: "flaghost", Port: 3052, User: "FLAGUSER", Password: "flagpass", Charset: "NONE"}
		cfg := ResolveServerParams(flags, &EnvVars{User: "ISCUSER"}, pc)
		if cfg.Host != "flaghost" || cfg.Port != 3052 || cfg.User != "FLAGUSER" || cfg.Password != "flagpass" || cfg.Charset != "NONE" {
			t.Errorf("got %+v", cfg)
		}
	})
}
