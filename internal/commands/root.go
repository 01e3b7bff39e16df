package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/tally/internal/backend"
	"github.com/cleared-dev/tally/internal/buildinfo"
	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/logging"
	"github.com/cleared-dev/tally/internal/session"
)

type rootOptions struct {
	configPath string
	dataFile   string
	backend    string
	envFile    string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
// Run without a subcommand it starts an interactive session.
func NewRootCommand() *cobra.Command {
	var opts rootOptions

	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Personal expense tracker",
		Version: buildinfo.String(),
		Args:    cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSession(cmd, opts)
		},
	}

	rootCmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultPath+")")
	rootCmd.Flags().StringVar(&opts.dataFile, "file", "", "data file, overriding the config")
	rootCmd.Flags().StringVar(&opts.backend, "backend", "", "storage backend: csv or sqlite")
	rootCmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file with TALLY_* overrides")

	rootCmd.AddCommand(newInitCommand())

	return rootCmd
}

func runSession(cmd *cobra.Command, opts rootOptions) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	store, err := backend.Open(cfg.BackendConfig())
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing storage", zap.Error(err))
		}
	}()

	logger.Debug("starting session",
		zap.String("backend", cfg.Backend),
		zap.String("data_file", cfg.DataFile),
	)

	s := session.New(store, session.Options{
		In:       cmd.InOrStdin(),
		Out:      cmd.OutOrStdout(),
		Logger:   logger,
		Currency: cfg.Currency,
		AuditLog: cfg.AuditLog,
	})
	return s.Run(cmd.Context())
}

// resolveConfig layers defaults, the config file, .env and TALLY_*
// variables, then command-line flags.
func resolveConfig(opts rootOptions) (*config.Config, error) {
	if opts.envFile != "" {
		if err := config.LoadEnvFile(opts.envFile); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Resolve(opts.configPath)
	if err != nil {
		return nil, err
	}

	if opts.backend != "" {
		cfg.Backend = opts.backend
	}
	if opts.dataFile != "" {
		if backend.Type(cfg.Backend) == backend.SQLite {
			cfg.SQLitePath = opts.dataFile
		} else {
			cfg.DataFile = opts.dataFile
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
