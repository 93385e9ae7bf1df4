package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/avinashchandan12/bake-ready-core/internal/domain/materials"
	"github.com/avinashchandan12/bake-ready-core/internal/infra/db"
	"github.com/avinashchandan12/bake-ready-core/internal/service"
	"github.com/spf13/cobra"
)

var exportOut string

var exportStockCmd = &cobra.Command{
	Use:   "export-stock",
	Short: "Write the stock report as CSV or XLSX (by --out extension, stdout is CSV)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := boot()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		pool, err := db.Connect(ctx, cfg.Postgres.DSN)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer pool.Close()

		reports := service.NewReports(newLogger(cfg), materials.NewRepo(pool), service.NewPgStore(pool), nil)

		var w io.Writer = cmd.OutOrStdout()
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			w = f
		}
		if strings.EqualFold(filepath.Ext(exportOut), ".xlsx") {
			return reports.WriteStockXLSX(ctx, w)
		}
		return reports.WriteStockCSV(ctx, w)
	},
}

func init() {
	exportStockCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (.csv or .xlsx); stdout when empty")
}
