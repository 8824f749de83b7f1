package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pumpsizer/internal/api"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the project over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return api.New(appCtx, appCtx.Log).ListenAndServe(ctx, cfg.Listen)
		},
	}
	cmd.Flags().StringVar(&cfg.Listen, "listen", ":8080", "HTTP listen address")
	return cmd
}
