package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vvka-141/dbmeta/pkg/dbmeta"
)

var rootCmd = &cobra.Command{
	Use:   "dbmeta",
	Short: "Firebird schema lifecycle tool",
	Long: `dbmeta builds Firebird databases from ordered SQL scripts, exports the
schema of an existing database back into scripts, and applies update scripts.

  build-db        create a new database and replay the scripts into it
  export-scripts  write domains, tables and procedures as DDL scripts
  update-db       apply scripts to an existing database

Scripts are the *.sql files directly inside a directory, executed in
file name order. SET TERM is honored, so procedure bodies may contain
semicolons.

Exit Codes:
  0  - Success (also when build-db finds an existing database)
  1  - CLI usage error (invalid arguments or flags)
  2  - General error
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Database connection failed
  13 - SQL statement rejected
  14 - Scripts directory missing or without .sql files
  15 - Catalog query failed during export`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout, os.Stderr)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("config", "",
		"Path to the project configuration file\n"+
			"(default: "+configFileHint+" in the working directory, if present)")
	rootCmd.PersistentFlags().Duration("timeout", dbmeta.DefaultTimeout,
		"Catastrophic failure protection timeout\n"+
			"Prevents indefinite hangs from network issues or lock waits\n"+
			"Examples: 30s, 5m, 1h30m")
	rootCmd.PersistentFlags().String("split-mode", "",
		"How scripts are cut into statements (build-db, update-db):\n"+
			"  terminator  split on ';' and honor SET TERM (default)\n"+
			"  simple      split on every ';'")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
