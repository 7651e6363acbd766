// Package cli provides the command-line interface for tablekit.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tablekit/internal/config"
	"github.com/leapstack-labs/tablekit/internal/store"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

var cfgFile string

// configKey is used to store config in context.
type configKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tablekit",
		Short: "tablekit - shareable table state",
		Long: `tablekit keeps a data table's full interaction state - search, sort,
filters, visible columns, page - in a flat query-string representation,
so every view is a shareable link.

It ships a demo dataset plus three frontends over the same state codec:
a web UI, a terminal browser, and a one-shot renderer.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("tablekit {{.Version}} (%s)\n", GitCommit))

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: tablekit.yaml)")
	pf.String("database", "", "SQLite database path (\":memory:\" works)")
	pf.String("addr", "", "web UI listen address")
	pf.Int("page-size", 0, "rows per page")
	pf.String("prefix", "", "query key namespace prefix")
	pf.Bool("verbose", false, "enable debug logging")

	rootCmd.AddCommand(
		NewServeCommand(),
		NewRenderCommand(),
		NewBrowseCommand(),
		NewSeedCommand(),
	)

	return rootCmd
}

// Execute runs the root command and returns a process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// configFromContext returns the config loaded by the root command.
func configFromContext(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	// PersistentPreRunE always runs first; this is a safety net for tests
	// that call a subcommand's RunE directly.
	cfg, _ := config.Load("", nil)
	return cfg
}

// openStore opens the configured database, migrates it, and seeds the demo
// dataset if empty.
func openStore(cmd *cobra.Command, cfg *config.Config) (*store.Store, error) {
	s, err := store.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(); err != nil {
		_ = s.Close()
		return nil, err
	}
	if err := s.Seed(cmd.Context()); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}
