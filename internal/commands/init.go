package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/backend"
	"github.com/cleared-dev/tally/internal/config"
)

func newInitCommand() *cobra.Command {
	var backendType string
	var currency string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a tally config and an empty expenses file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg := config.Default()
			cfg.Backend = backendType
			if currency != "" {
				cfg.Currency = currency
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return runInit(cmd.Context(), cmd.OutOrStdout(), absDir, cfg)
		},
	}

	cmd.Flags().StringVar(&backendType, "backend", string(backend.CSV), "storage backend: csv or sqlite")
	cmd.Flags().StringVar(&currency, "currency", "", "currency symbol shown with amounts")

	return cmd
}

func runInit(ctx context.Context, out io.Writer, dir string, cfg *config.Config) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	configPath := filepath.Join(dir, config.DefaultPath)

	// Paths in the saved config stay relative to it.
	storage := cfg.BackendConfig()
	storage.DataFile = filepath.Join(dir, storage.DataFile)
	storage.SQLitePath = filepath.Join(dir, storage.SQLitePath)

	dataPath := storage.DataFile
	if storage.Type == backend.SQLite {
		dataPath = storage.SQLitePath
	}

	for _, p := range []string{configPath, dataPath} {
		if _, err := os.Stat(p); err == nil {
			return fmt.Errorf("%s already exists", p)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", p, err)
		}
	}

	if err := config.Save(configPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	store, err := backend.Open(storage)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Save(ctx, nil); err != nil {
		return fmt.Errorf("writing data file: %w", err)
	}

	fmt.Fprintf(out, "Initialized tally project at %s (%s backend, %s)\n", dir, cfg.Backend, dataPath)
	return nil
}
