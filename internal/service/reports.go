package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/avinashchandan12/bake-ready-core/internal/domain/inventory"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/materials"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type MaterialLister interface {
	List(ctx context.Context) ([]materials.RawMaterial, error)
}

type Reports struct {
	log       *slog.Logger
	materials MaterialLister
	store     Store
	events    StockEvents
}

func NewReports(log *slog.Logger, mats MaterialLister, store Store, events StockEvents) *Reports {
	if events == nil {
		events = noEvents{}
	}
	return &Reports{log: log, materials: mats, store: store, events: events}
}

func stockStatus(m materials.RawMaterial) string {
	if m.IsLowStock() {
		return "Low Stock"
	}
	return "In Stock"
}

// WriteStockCSV writes Name,Stock Quantity,Unit,Reorder Level,Status.
func (s *Reports) WriteStockCSV(ctx context.Context, w io.Writer) error {
	mats, err := s.materials.List(ctx)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Name", "Stock Quantity", "Unit", "Reorder Level", "Status"}); err != nil {
		return err
	}
	for _, m := range mats {
		if err := cw.Write([]string{
			m.Name,
			m.StockQuantity.String(),
			m.Unit,
			m.ReorderLevel.String(),
			stockStatus(m),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var stockSheetHeader = []any{"ID", "Name", "Unit", "Stock Quantity", "Reorder Level", "Status", "Counted"}

// WriteStockXLSX writes the stock sheet. The Counted column is left empty
// for a stocktake and read back by ImportStocktake.
func (s *Reports) WriteStockXLSX(ctx context.Context, w io.Writer) error {
	mats, err := s.materials.List(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	header := stockSheetHeader
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("header: %w", err)
	}

	row := 2
	for _, m := range mats {
		stock, _ := m.StockQuantity.Float64()
		reorder, _ := m.ReorderLevel.Float64()
		excelRow := []any{m.ID.String(), m.Name, m.Unit, stock, reorder, stockStatus(m), ""}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return fmt.Errorf("row %d: %w", row, err)
		}
		row++
	}
	_ = f.SetColWidth(sheet, "A", "A", 38)
	_ = f.SetColWidth(sheet, "B", "B", 28)

	_, err = f.WriteTo(w)
	return err
}

type ImportResult struct {
	Adjusted  int      `json:"adjusted"`
	Unchanged int      `json:"unchanged"`
	Skipped   int      `json:"skipped"`
	Warnings  []string `json:"warnings,omitempty"`
}

type countRow struct {
	line    int
	id      uuid.UUID
	counted decimal.Decimal
}

// ImportStocktake sets every listed material to its counted quantity through
// adjust movements. Rows with an empty Counted cell are skipped. Any bad
// row rejects the whole file before stock is touched.
func (s *Reports) ImportStocktake(ctx context.Context, r io.Reader) (*ImportResult, error) {
	rows, res, err := parseStocktake(r)
	if err != nil {
		return nil, err
	}

	var changed []uuid.UUID
	err = s.store.InTx(ctx, func(tx Tx) error {
		for _, cr := range rows {
			diff, err := tx.Stock.Set(ctx, cr.id, cr.counted, inventory.ReasonStocktake, "stocktake import")
			if err != nil {
				return fmt.Errorf("row %d: %w", cr.line, err)
			}
			if diff.IsZero() {
				res.Unchanged++
				continue
			}
			res.Adjusted++
			changed = append(changed, cr.id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("stocktake imported", "adjusted", res.Adjusted, "unchanged", res.Unchanged, "skipped", res.Skipped)
	if len(changed) > 0 {
		s.events.StockChanged(ctx, changed)
	}
	return res, nil
}

func parseStocktake(r io.Reader) ([]countRow, *ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, &ValidationError{Msg: "file is not a readable .xlsx workbook"}
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(f.GetActiveSheetIndex()), excelize.Options{RawCellValue: true})
	if err != nil || len(rows) < 2 {
		return nil, nil, &ValidationError{Msg: "workbook has no material rows"}
	}

	idCol, countCol := -1, -1
	for i, h := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "id":
			idCol = i
		case "counted":
			countCol = i
		}
	}
	if idCol < 0 || countCol < 0 {
		return nil, nil, &ValidationError{Msg: "header must contain ID and Counted columns"}
	}

	res := &ImportResult{}
	seen := map[uuid.UUID]int{}
	var out []countRow
	for i := 1; i < len(rows); i++ {
		line := i + 1
		row := rows[i]
		cellAt := func(c int) string {
			if c < len(row) {
				return strings.TrimSpace(row[c])
			}
			return ""
		}
		idStr, qtyStr := cellAt(idCol), cellAt(countCol)
		if idStr == "" || qtyStr == "" {
			res.Skipped++
			continue
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, nil, &ValidationError{Msg: fmt.Sprintf("row %d: invalid ID %q", line, idStr)}
		}
		counted, err := parseCount(qtyStr)
		if err != nil || counted.IsNegative() {
			return nil, nil, &ValidationError{Msg: fmt.Sprintf("row %d: counted quantity %q must be a non-negative number", line, qtyStr)}
		}
		if prev, dup := seen[id]; dup {
			res.Warnings = append(res.Warnings, fmt.Sprintf("row %d repeats row %d; later value wins", line, prev))
			out[indexOf(out, id)].counted = counted
			continue
		}
		seen[id] = line
		out = append(out, countRow{line: line, id: id, counted: counted})
	}
	return out, res, nil
}

// parseCount reads a counted quantity. A single comma is taken as a decimal
// separator unless it could be a thousands separator, which is rejected.
func parseCount(v string) (decimal.Decimal, error) {
	if strings.Contains(v, ",") {
		whole, frac, _ := strings.Cut(v, ",")
		if strings.ContainsAny(frac, ",.") || strings.Contains(whole, ".") || len(frac) == 3 {
			return decimal.Decimal{}, fmt.Errorf("ambiguous separator in %q", v)
		}
		v = whole + "." + frac
	}
	return decimal.NewFromString(v)
}

func indexOf(rows []countRow, id uuid.UUID) int {
	for i, r := range rows {
		if r.id == id {
			return i
		}
	}
	return -1
}

// Adjust sets one material to a counted quantity and returns the difference.
func (s *Reports) Adjust(ctx context.Context, materialID uuid.UUID, counted decimal.Decimal, note string) (decimal.Decimal, error) {
	if counted.IsNegative() {
		return decimal.Zero, &ValidationError{Msg: "counted quantity cannot be negative"}
	}
	note = strings.TrimSpace(note)
	if note == "" {
		note = "manual adjustment"
	}
	var diff decimal.Decimal
	err := s.store.InTx(ctx, func(tx Tx) error {
		var err error
		diff, err = tx.Stock.Set(ctx, materialID, counted, inventory.ReasonManual, note)
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	if !diff.IsZero() {
		s.events.StockChanged(ctx, []uuid.UUID{materialID})
	}
	return diff, nil
}
