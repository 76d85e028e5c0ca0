package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/dbmeta/internal/db"
	"github.com/vvka-141/dbmeta/internal/logging"
	"github.com/vvka-141/dbmeta/pkg/dbmeta"
)

var buildCmd = &cobra.Command{
	Use:   "build-db",
	Short: "Create a new database from scripts",
	Long: `Build-db creates a new, empty Firebird database and replays the *.sql
files of the scripts directory into it, in file name order.

If the database file already exists nothing is touched: a warning is
printed and the command exits with code 0.

Server address and credentials:
  Precedence: flag > $ISC_USER/$ISC_PASSWORD > ` + configFileHint + ` > defaults
  Defaults: localhost:3050, SYSDBA/masterkey, UTF8

Examples:
  # Build ./db/database.fdb from ./schema
  dbmeta build-db --db-dir ./db --scripts-dir ./schema

  # Custom file name and page size on a remote server
  dbmeta build-db --db-dir /data --database-file app.fdb \
    --scripts-dir ./schema --host fb.internal --page-size 16384`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

type buildFlagValues struct {
	dbDir, scriptsDir, databaseFile string
	host, user, password, charset   string
	port, pageSize                  int
	forcedWrites                    bool
}

var buildFlags buildFlagValues

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(&buildFlags.dbDir, "db-dir", "",
		"Directory the database file is created in (created if missing)")
	buildCmd.Flags().StringVar(&buildFlags.scriptsDir, "scripts-dir", "",
		"Directory with the *.sql files to execute")
	buildCmd.Flags().StringVar(&buildFlags.databaseFile, "database-file", "",
		"Database file name inside --db-dir (default "+dbmeta.DefaultDatabaseFile+")")
	_ = buildCmd.MarkFlagRequired("db-dir")
	_ = buildCmd.MarkFlagRequired("scripts-dir")

	buildCmd.Flags().StringVar(&buildFlags.host, "host", "", "Firebird server host (default "+dbmeta.DefaultHost+")")
	buildCmd.Flags().IntVar(&buildFlags.port, "port", 0, fmt.Sprintf("Firebird server port (default %d)", dbmeta.DefaultPort))
	buildCmd.Flags().StringVar(&buildFlags.user, "user", "", "User (default $ISC_USER or "+dbmeta.DefaultUser+")")
	buildCmd.Flags().StringVar(&buildFlags.password, "password", "",
		"Password (default $ISC_PASSWORD)\n"+
			"Prefer $ISC_PASSWORD: flags are visible in shell history and the process list")
	buildCmd.Flags().StringVar(&buildFlags.charset, "charset", "", "Connection character set (default "+dbmeta.DefaultCharset+")")

	buildCmd.Flags().IntVar(&buildFlags.pageSize, "page-size", dbmeta.DefaultPageSize,
		"Page size of the new database: 4096, 8192, 16384 or 32768")
	buildCmd.Flags().BoolVar(&buildFlags.forcedWrites, "forced-writes", true,
		"Create the database with forced (synchronous) writes")
}

// buildBuildConfig builds a BuildConfig from CLI flags, environment and
// project configuration.
func buildBuildConfig(cmd *cobra.Command, verbose bool) (dbmeta.BuildConfig, time.Duration, error) {
	pc, err := loadProjectConfig(cmd)
	if err != nil {
		return dbmeta.BuildConfig{}, 0, err
	}

	conn := db.ResolveServerParams(&db.ServerFlags{
		Host:     buildFlags.host,
		Port:     buildFlags.port,
		User:     buildFlags.user,
		Password: buildFlags.password,
		Charset:  buildFlags.charset,
	}, db.LoadFromEnvironment(), pc)

	create := dbmeta.DefaultCreateOptions()
	databaseFile := buildFlags.databaseFile
	if pc != nil {
		if pc.Database.PageSize > 0 {
			create.PageSize = pc.Database.PageSize
		}
		if pc.Database.ForcedWrites != nil {
			create.ForcedWrites = *pc.Database.ForcedWrites
		}
		if databaseFile == "" {
			databaseFile = pc.Database.File
		}
	}
	if cmd.Flags().Changed("page-size") {
		create.PageSize = buildFlags.pageSize
	}
	if cmd.Flags().Changed("forced-writes") {
		create.ForcedWrites = buildFlags.forcedWrites
	}
	if databaseFile == "" {
		databaseFile = dbmeta.DefaultDatabaseFile
	}

	mode, err := resolveSplitMode(cmd, pc)
	if err != nil {
		return dbmeta.BuildConfig{}, 0, err
	}
	timeout, err := resolveTimeout(cmd, pc)
	if err != nil {
		return dbmeta.BuildConfig{}, 0, err
	}

	return dbmeta.BuildConfig{
		DatabaseDir:  buildFlags.dbDir,
		DatabaseFile: databaseFile,
		ScriptsDir:   buildFlags.scriptsDir,
		Connection:   *conn,
		Create:       create,
		SplitMode:    mode,
		Verbose:      verbose,
	}, timeout, nil
}

func runBuild(cmd *cobra.Command, _ []string) error {
	verbose := getVerboseFlag(cmd)

	config, timeout, err := buildBuildConfig(cmd, verbose)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(verbose)
	ctx, cancel := commandContext(timeout)
	defer cancel()

	err = newWorkflow(logger).Build(ctx, config)
	if errors.Is(err, dbmeta.ErrDatabaseExists) {
		logger.Warning("%v; nothing was changed", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("build-db failed: %w", err)
	}
	return nil
}
