package main

import (
	"github.com/avinashchandan12/bake-ready-core/internal/infra/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Apply, roll back or list the embedded database migrations",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := boot()
		if err != nil {
			return err
		}
		command := "up"
		if len(args) == 1 {
			command = args[0]
		}
		log := newLogger(cfg)
		if err := db.Migrate(cfg.Postgres.DSN, command); err != nil {
			return err
		}
		log.Info("migrations done", "command", command)
		return nil
	},
}
