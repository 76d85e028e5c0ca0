package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/dbmeta/internal/config"
	"github.com/vvka-141/dbmeta/internal/db"
	"github.com/vvka-141/dbmeta/internal/db/manager"
	"github.com/vvka-141/dbmeta/internal/files/filesystem"
	"github.com/vvka-141/dbmeta/internal/files/scanner"
	"github.com/vvka-141/dbmeta/internal/services"
	"github.com/vvka-141/dbmeta/pkg/dbmeta"
)

const configFileHint = config.ConfigFileName

// loadProjectConfig loads .env into the environment and reads the project
// configuration. A missing default config file is not an error; a missing
// file named by --config is.
func loadProjectConfig(cmd *cobra.Command) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %v: %w", path, err, dbmeta.ErrInvalidConfig)
		}
		return cfg, nil
	}

	cfg, err := config.Load(".")
	if errors.Is(err, config.ErrConfigNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %v: %w", config.ConfigFileName, err, dbmeta.ErrInvalidConfig)
	}
	return cfg, nil
}

// resolveTimeout returns --timeout, or the project timeout when the flag
// was not given explicitly.
func resolveTimeout(cmd *cobra.Command, pc *config.ProjectConfig) (time.Duration, error) {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if pc != nil && !cmd.Flags().Changed("timeout") {
		d, err := pc.TimeoutDuration()
		if err != nil {
			return 0, fmt.Errorf("%v: %w", err, dbmeta.ErrInvalidConfig)
		}
		if d > 0 {
			timeout = d
		}
	}
	if timeout <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %s: %w", timeout, dbmeta.ErrInvalidConfig)
	}
	return timeout, nil
}

// resolveSplitMode returns --split-mode, else the project split mode,
// else terminator mode.
func resolveSplitMode(cmd *cobra.Command, pc *config.ProjectConfig) (dbmeta.SplitMode, error) {
	mode, _ := cmd.Flags().GetString("split-mode")
	if mode == "" && pc != nil {
		mode = pc.SplitMode
	}
	return dbmeta.ParseSplitMode(mode)
}

// commandContext returns a context bounded by timeout and cancelled on
// SIGINT or SIGTERM.
func commandContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}

// newWorkflow wires the production workflow service.
func newWorkflow(logger dbmeta.Logger) *services.WorkflowService {
	fsProvider := filesystem.NewOSFileSystem()
	connectorFactory := func(cfg *dbmeta.ConnectionConfig) (dbmeta.Connector, error) {
		return db.NewConnector(cfg, logger)
	}
	return services.NewWorkflowService(
		connectorFactory,
		manager.New(fsProvider, logger),
		scanner.NewScanner(fsProvider),
		fsProvider,
		logger,
	)
}
