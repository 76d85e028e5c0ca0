package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/dbmeta/internal/db"
	"github.com/vvka-141/dbmeta/internal/logging"
	"github.com/vvka-141/dbmeta/pkg/dbmeta"
)

var updateCmd = &cobra.Command{
	Use:   "update-db",
	Short: "Apply scripts to an existing database",
	Long: `Update-db executes the *.sql files of the scripts directory against an
existing database, in file name order, stopping at the first statement the
database rejects. Statements that ran before the failure stay applied.

Scripts are not checked for idempotency: running the same scripts twice
fails at the first object that already exists unless the scripts use
CREATE OR ALTER or similar forms.

Examples:
  dbmeta update-db --connection-string localhost:/data/app.fdb --scripts-dir ./updates

  # Legacy scripts without SET TERM
  dbmeta update-db --connection-string localhost:/data/app.fdb \
    --scripts-dir ./updates --split-mode simple`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

type updateFlagValues struct {
	connection, scriptsDir string
}

var updateFlags updateFlagValues

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVar(&updateFlags.connection, "connection-string", "",
		"Target database connection string (ADO.NET, URI or driver DSN)\n"+
			"Alternative: $"+db.EnvConnectionString)
	updateCmd.Flags().StringVar(&updateFlags.scriptsDir, "scripts-dir", "",
		"Directory with the *.sql files to execute")
	_ = updateCmd.MarkFlagRequired("scripts-dir")
}

// buildUpdateConfig builds an UpdateConfig from CLI flags, environment and
// project configuration.
func buildUpdateConfig(cmd *cobra.Command, verbose bool) (dbmeta.UpdateConfig, time.Duration, error) {
	pc, err := loadProjectConfig(cmd)
	if err != nil {
		return dbmeta.UpdateConfig{}, 0, err
	}

	conn, err := db.ResolveConnectionString(updateFlags.connection, db.LoadFromEnvironment(), pc)
	if err != nil {
		return dbmeta.UpdateConfig{}, 0, err
	}
	mode, err := resolveSplitMode(cmd, pc)
	if err != nil {
		return dbmeta.UpdateConfig{}, 0, err
	}
	timeout, err := resolveTimeout(cmd, pc)
	if err != nil {
		return dbmeta.UpdateConfig{}, 0, err
	}

	return dbmeta.UpdateConfig{
		ConnectionString: db.Redact(conn),
		Connection:       conn,
		ScriptsDir:       updateFlags.scriptsDir,
		SplitMode:        mode,
		Verbose:          verbose,
	}, timeout, nil
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	verbose := getVerboseFlag(cmd)

	config, timeout, err := buildUpdateConfig(cmd, verbose)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(verbose)
	ctx, cancel := commandContext(timeout)
	defer cancel()

	if err := newWorkflow(logger).Update(ctx, config); err != nil {
		return fmt.Errorf("update-db failed: %w", err)
	}
	return nil
}
