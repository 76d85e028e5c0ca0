package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/dbmeta/internal/db"
	"github.com/vvka-141/dbmeta/internal/logging"
	"github.com/vvka-141/dbmeta/pkg/dbmeta"
)

var exportCmd = &cobra.Command{
	Use:   "export-scripts",
	Short: "Export the schema of a database as DDL scripts",
	Long: `Export-scripts reads the catalog of an existing database and writes
three scripts into the output directory:

  001_domains.sql     CREATE DOMAIN statements
  002_tables.sql      CREATE TABLE statements
  003_procedures.sql  CREATE PROCEDURE statements wrapped in SET TERM

Existing files are overwritten. The directory can be passed to build-db
as --scripts-dir to recreate the schema.

Examples:
  dbmeta export-scripts \
    --connection-string "DataSource=localhost;Port=3050;Database=/data/app.fdb;User=SYSDBA;Password=masterkey" \
    --output-dir ./schema

  DBMETA_CONNECTION_STRING=localhost:/data/app.fdb dbmeta export-scripts --output-dir ./schema`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

type exportFlagValues struct {
	connection, outputDir string
}

var exportFlags exportFlagValues

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFlags.connection, "connection-string", "",
		"Source database connection string (ADO.NET, URI or driver DSN)\n"+
			"Alternative: $"+db.EnvConnectionString)
	exportCmd.Flags().StringVar(&exportFlags.outputDir, "output-dir", "",
		"Directory the scripts are written to (created if missing)")
	_ = exportCmd.MarkFlagRequired("output-dir")
}

// buildExportConfig builds an ExportConfig from CLI flags, environment and
// project configuration.
func buildExportConfig(cmd *cobra.Command, verbose bool) (dbmeta.ExportConfig, time.Duration, error) {
	pc, err := loadProjectConfig(cmd)
	if err != nil {
		return dbmeta.ExportConfig{}, 0, err
	}

	env := db.LoadFromEnvironment()
	conn, err := db.ResolveConnectionString(exportFlags.connection, env, pc)
	if err != nil {
		return dbmeta.ExportConfig{}, 0, err
	}
	timeout, err := resolveTimeout(cmd, pc)
	if err != nil {
		return dbmeta.ExportConfig{}, 0, err
	}

	return dbmeta.ExportConfig{
		ConnectionString: db.Redact(conn),
		Connection:       conn,
		OutputDir:        exportFlags.outputDir,
		Verbose:          verbose,
	}, timeout, nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	verbose := getVerboseFlag(cmd)

	config, timeout, err := buildExportConfig(cmd, verbose)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(verbose)
	ctx, cancel := commandContext(timeout)
	defer cancel()

	if err := newWorkflow(logger).Export(ctx, config); err != nil {
		return fmt.Errorf("export-scripts failed: %w", err)
	}
	return nil
}
