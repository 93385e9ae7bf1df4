package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/avinashchandan12/bake-ready-core/internal/config"
	"github.com/avinashchandan12/bake-ready-core/internal/infra/logger"
	"github.com/spf13/cobra"
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "bakeready",
	Short:         "Bakery back office: stock, recipes, production and receiving",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config/example.yaml", "path to the yaml config")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(exportStockCmd)
}

// boot loads config and sets the process timezone so "today" and GRN dates
// follow the bakery's clock.
func boot() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if cfg.App.Timezone != "" {
		loc, err := time.LoadLocation(cfg.App.Timezone)
		if err != nil {
			return cfg, fmt.Errorf("app.timezone: %w", err)
		}
		time.Local = loc
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	return logger.New(cfg.App.Env)
}
