// Root command and shared state for the swatch CLI.
package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/swatch/internal/logging"
	"github.com/mesh-intelligence/swatch/internal/paths"
	"github.com/mesh-intelligence/swatch/pkg/sqlite"
	"github.com/mesh-intelligence/swatch/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	logLevel  string
	json      bool
}

// app carries the state of one invocation. The catalog is attached on
// first use and detached by run.
type app struct {
	flags     rootFlags
	configDir string
	dataDir   string
	cfg       *viper.Viper
	logger    *slog.Logger
	catalog   types.Catalog
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "swatch",
		Short: "Swatch manages design tokens, snapshots and diffs",
		Long: `Swatch keeps a validated set of design tokens (colors, spacing,
typography, shadows and more), freezes it into immutable snapshots, and
compares any two snapshots or a snapshot against the live set.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.swatch-db)")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&a.flags.json, "json", false, "output as JSON")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newAddCmd(a),
		newUpdateCmd(a),
		newGetCmd(a),
		newDeleteCmd(a),
		newListCmd(a),
		newValidateCmd(a),
		newSeedCmd(a),
		newExportCSSCmd(a),
		newExportJSCmd(a),
		newExportTailwindCmd(a),
		newSnapshotCmd(a),
		newDiffCmd(a),
		newImportCmd(a),
	)
	return root
}

// setup loads configuration and builds the logger before any subcommand.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return systemErr(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return systemErr(err)
	}

	logCfg := logging.DefaultConfig()
	logCfg.Output = cmd.ErrOrStderr()
	if level := cfg.GetString(cfgKeyLogLevel); level != "" {
		logCfg.Level = level
	}
	if a.flags.logLevel != "" {
		logCfg.Level = a.flags.logLevel
	}
	if format := cfg.GetString(cfgKeyLogFormat); format != "" {
		logCfg.Format = format
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return systemErr(fmt.Errorf("configure logging: %w", err))
	}

	a.configDir = configDir
	a.cfg = cfg
	a.logger = logger
	return nil
}

// open attaches the configured backend once per invocation.
func (a *app) open() (types.Catalog, error) {
	if a.catalog != nil {
		return a.catalog, nil
	}
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, systemErr(fmt.Errorf("resolve data dir: %w", err))
	}

	catalog := sqlite.NewBackend(sqlite.WithLogger(a.logger))
	config := types.Config{
		Backend: a.cfg.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}
	if err := catalog.Attach(config); err != nil {
		return nil, systemErr(fmt.Errorf("attach backend: %w", err))
	}

	a.catalog = catalog
	a.dataDir = dataDir
	return catalog, nil
}

func (a *app) tokens() (types.TokenStore, error) {
	catalog, err := a.open()
	if err != nil {
		return nil, err
	}
	return catalog.Tokens()
}

func (a *app) snapshots() (types.SnapshotManager, error) {
	catalog, err := a.open()
	if err != nil {
		return nil, err
	}
	return catalog.Snapshots()
}

func (a *app) close() error {
	if a.catalog == nil {
		return nil
	}
	err := a.catalog.Detach()
	a.catalog = nil
	return err
}

// systemError marks failures the user cannot fix by changing arguments.
type systemError struct {
	err error
}

func (e *systemError) Error() string { return e.err.Error() }

func (e *systemError) Unwrap() error { return e.err }

func systemErr(err error) error {
	return &systemError{err: err}
}

// exitCode maps an error to the process exit code: storage and
// configuration failures are system errors, everything else is the user's.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *systemError
	if errors.As(err, &se) || errors.Is(err, types.ErrStorage) {
		return exitSysError
	}
	return exitUserError
}
