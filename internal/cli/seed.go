package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create and seed the demo database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromContext(cmd)

			s, err := openStore(cmd, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			fmt.Fprintf(cmd.OutOrStdout(), "database ready: %s\n", cfg.Database)
			return nil
		},
	}
}
