package cli

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tablekit/internal/store"
	"github.com/leapstack-labs/tablekit/internal/ui"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the web UI",
		Long: `Serve the demo table as a web page. All interaction state lives in the
URL query string; copy the address bar to share the exact view.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromContext(cmd)

			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			s, err := openStore(cmd, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			server := ui.NewServer(ui.Config{
				Store:         s,
				Table:         store.NewTable(cfg.Prefix),
				Addr:          cfg.Addr,
				PageSize:      cfg.PageSize,
				SessionSecret: cfg.SessionSecret,
				Logger:        logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.Serve(ctx)
		},
	}
}
