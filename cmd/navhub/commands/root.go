// Package commands implements the navhub command line.
package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/navhub-dev/navhub/db"
	"github.com/navhub-dev/navhub/internal/config"
	"github.com/navhub-dev/navhub/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "navhub",
	Short: "NavHub - personal navigation dashboard backend",
	Long: `NavHub serves the bookmark dashboard API and its single-page front end.

Running navhub without a subcommand starts the server.

Configuration is read from defaults, an optional --config file and the
environment (NAVHUB_<SECTION>_<KEY>, plus PORT, JWT_SECRET, DATABASE_URL and
ALLOWED_ORIGINS). A .env file in the working directory is loaded first.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(resetPasswordCmd)
}

// bootstrap loads .env and the configuration and builds the logger.
func bootstrap() (*config.Config, *zap.Logger, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return cfg, log, nil
}

// openDatabase connects, migrates and returns a close function.
func openDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	conn, err := db.Open(cfg.Database, cfg.Logging.Level == "debug")
	if err != nil {
		return nil, nil, err
	}

	log.Info("database ready",
		zap.String("driver", cfg.Database.Driver),
		zap.String("path", cfg.Database.Path),
	)

	closeFn := func() {
		if sqlDB, err := conn.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Warn("failed to close database", zap.Error(err))
			}
		}
	}

	return conn, closeFn, nil
}
