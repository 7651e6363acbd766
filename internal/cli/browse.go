package cli

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tablekit/internal/browse"
	"github.com/leapstack-labs/tablekit/internal/store"
)

// NewBrowseCommand creates the browse command.
func NewBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the table interactively in the terminal",
		Long: `Browse the demo table in a TUI. The same actions as the web UI drive
an in-memory query map instead of the URL bar.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromContext(cmd)

			s, err := openStore(cmd, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			return browse.Run(cmd.Context(), s, store.NewTable(cfg.Prefix), cfg.PageSize)
		},
	}
}
