package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"sportify/internal/platform/config"
	"sportify/internal/platform/logger"
)

func rootCmd() *cobra.Command {
	var envFile string

	c := &cobra.Command{
		Use:           "sportify",
		Short:         "Sports federation management API",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return config.LoadDotEnv(envFile)
		},
	}
	c.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file loaded before reading the environment")

	c.AddCommand(serveCmd(), migrateCmd())
	return c
}

// loadConfig reads the environment and builds the process logger.
func loadConfig() (config.Config, *slog.Logger, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger.New(cfg.Log.Level, cfg.Log.JSON), nil
}
