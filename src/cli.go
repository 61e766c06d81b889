package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/plusk0/periodic-table/src/periodic"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	CommitSHA = "unknown"
)

// env is what every command works against: the loaded config, the store
// and an initialized table.
type env struct {
	cfg   Config
	log   *slog.Logger
	store periodic.Store
	ids   periodic.IDGenerator
	table *periodic.Table
	close func() error
}

func (e *env) Close() error {
	if e.close == nil {
		return nil
	}
	return e.close()
}

// Execute runs the root command and prints any error.
func Execute() error {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "periodic",
		Short: "An editable periodic table with undo/redo",
		Long: `periodic keeps a table of chemical elements in a local SQLite file.

Run it without arguments to open the window. The subcommands work on the
same file from the terminal, including undo and redo of earlier changes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()
			return runWindow(e)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("periodic version %s (commit %s)\n", Version, CommitSHA))

	pf := root.PersistentFlags()
	pf.String("config", "./config.json", "Config file (.json or .toml)")
	pf.String("db", "", "SQLite database file (overrides config)")
	pf.Bool("ephemeral", false, "Keep everything in memory; nothing is saved")
	pf.Int("debounce", -1, "Filter quiet period in milliseconds (overrides config)")
	pf.BoolP("verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newListCmd(),
		newAddCmd(),
		newEditCmd(),
		newRmCmd(),
		newUndoCmd(),
		newRedoCmd(),
		newResetCmd(),
		newPushCmd(),
		newExportCmd(),
		newImportCmd(),
		newStatusCmd(),
	)
	return root
}

// openEnv loads config, opens the store and initializes the table.
func openEnv(cmd *cobra.Command) (*env, error) {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if db, _ := flags.GetString("db"); db != "" {
		cfg.DBPath = db
	}
	if ms, _ := flags.GetInt("debounce"); ms >= 0 {
		cfg.DebounceMS = ms
	}
	verbose, _ := flags.GetBool("verbose")
	logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, verbose)

	ids, err := periodic.NewIDGenerator(cfg.IDFormat)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, log: logger, ids: ids}
	if ephemeral, _ := flags.GetBool("ephemeral"); ephemeral {
		e.store = periodic.NewMemoryStore()
	} else {
		s, err := openStore(cfg.DBPath, logger)
		if err != nil {
			return nil, err
		}
		e.store = s
		e.close = s.Close
	}

	e.table = periodic.NewTable(e.store,
		periodic.WithIDGenerator(ids),
		periodic.WithLogger(logger))
	if err := e.table.Initialize(); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

// withEnv wraps a command body with openEnv/Close.
func withEnv(fn func(cmd *cobra.Command, args []string, e *env) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		return fn(cmd, args, e)
	}
}
