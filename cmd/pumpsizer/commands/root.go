package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"pumpsizer/internal/app"
)

var (
	cfg    app.Config
	appCtx *app.App
)

func Execute() error {
	root := &cobra.Command{
		Use:           "pumpsizer",
		Short:         "Swimming-pool pump sizing",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := cfg.WithDefaults()
			if err != nil {
				return err
			}
			cfg = resolved

			lvl, err := cfg.Level()
			if err != nil {
				return err
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
			slog.SetDefault(logger)

			w, err := app.NewWire(cfg, logger)
			if err != nil {
				return err
			}
			appCtx, err = app.New(w)
			if err != nil {
				_ = w.Close()
				return err
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if appCtx == nil {
				return nil
			}
			return appCtx.Close()
		},
	}

	root.PersistentFlags().StringVar(&cfg.Home, "home", "", "data dir (default ~/.pumpsizer)")
	root.PersistentFlags().StringVar(&cfg.ProjectPath, "project", "", "project document (default $home/project.json)")
	root.PersistentFlags().StringVar(&cfg.CurveDB, "curves-db", "", "shared curve library (default $home/curves.db)")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "debug, info, warn or error")

	root.AddCommand(
		initCmd(), showCmd(), setCmd(), featureCmd(), pumpCmd(), curvesCmd(),
		evaluateCmd(), estimateCmd(), exportCmd(), importCmd(), fingerprintCmd(), serveCmd(),
	)
	return root.Execute()
}
