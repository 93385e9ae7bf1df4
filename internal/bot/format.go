package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/avinashchandan12/bake-ready-core/internal/dialog"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/grn"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/inventory"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/materials"
	"github.com/avinashchandan12/bake-ready-core/internal/production"
	"github.com/avinashchandan12/bake-ready-core/internal/service"
)

func badge(sufficient bool) string {
	if sufficient {
		return "🟢"
	}
	return "🔴"
}

func formatEstimate(e *service.Estimate) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\nYou can make %d unit(s) right now", e.ProductName, e.MaxProducible)
	if e.EstimatedHours > 0 {
		fmt.Fprintf(&sb, " (about %dh of work)", e.EstimatedHours)
	}
	sb.WriteString(".\n")
	if len(e.PerIngredient) > 0 {
		fmt.Fprintf(&sb, "Limited by %s.\n", e.Limiting.Name)
	}
	sb.WriteString("\n")
	for _, ing := range e.PerIngredient {
		fmt.Fprintf(&sb, "%s %s: %s/%s %s per unit → %d\n",
			badge(ing.Sufficient), ing.Name,
			ing.AvailableStock.String(), ing.RequiredPerUnit.String(), ing.Unit,
			ing.PossibleUnits)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatQtyPrompt(e *service.Estimate) string {
	return fmt.Sprintf("%s: how many units were produced? Current stock covers up to %d.",
		e.ProductName, e.MaxProducible)
}

func formatProduceSummary(p dialog.Payload) string {
	name, _ := dialog.GetString(p, keyRecipeName)
	qty, _ := dialog.GetInt(p, keyQuantity)
	text := fmt.Sprintf("Log %d × %s", qty, name)
	if mins, ok := dialog.GetInt(p, keyMinutes); ok {
		text += fmt.Sprintf(" taking %d min", mins)
	} else {
		text += " using the recipe time"
	}
	return text + "?"
}

func formatLogResult(res *service.LogResult, currency string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Logged %d × %s.", res.Log.Quantity, res.Log.ProductName)
	if res.Log.ProductionCost != nil {
		fmt.Fprintf(&sb, " Labour cost %s %s.", res.Log.ProductionCost.StringFixed(2), currency)
	}
	sb.WriteString("\n")
	for _, d := range res.Deltas {
		fmt.Fprintf(&sb, "\n%s: -%s %s, %s left", d.Name, d.Used.String(), d.Unit, d.NewStock.String())
	}
	return sb.String()
}

func formatLowStock(low []materials.RawMaterial) string {
	var sb strings.Builder
	sb.WriteString("⚠️ Low stock:\n")
	for _, m := range low {
		fmt.Fprintf(&sb, "\n• %s: %s %s (reorder at %s)",
			m.Name, m.StockQuantity.String(), m.Unit, m.ReorderLevel.String())
	}
	return sb.String()
}

func formatDiscrepancies(g *grn.GRN, found []grn.Discrepancy) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📦 %s from %s has %d discrepanc", g.Number, g.VendorName, len(found))
	if len(found) == 1 {
		sb.WriteString("y:\n")
	} else {
		sb.WriteString("ies:\n")
	}
	for _, d := range found {
		sign := "-"
		if d.Type == grn.Excess {
			sign = "+"
		}
		name := d.MaterialName
		if name == "" {
			name = d.MaterialID.String()
		}
		fmt.Fprintf(&sb, "\n• %s: expected %s, received %s (%s%s %s)",
			name, d.Expected.String(), d.Received.String(), sign, d.Quantity.String(), d.Type)
	}
	return sb.String()
}

func formatImport(res *service.ImportResult) string {
	text := fmt.Sprintf("Stocktake applied: %d adjusted, %d unchanged, %d skipped.",
		res.Adjusted, res.Unchanged, res.Skipped)
	if len(res.Warnings) > 0 {
		text += "\n\n" + strings.Join(res.Warnings, "\n")
	}
	return text
}

// formatError turns service errors into operator-facing text.
func formatError(err error) string {
	var (
		short *production.InsufficientStockError
		badRc *production.InvalidRecipeError
		badIn *production.InvalidInputError
		verr  *service.ValidationError
	)
	switch {
	case errors.As(err, &short):
		var sb strings.Builder
		sb.WriteString("Not enough stock, nothing was logged:\n")
		for _, s := range short.Shortages {
			fmt.Fprintf(&sb, "\n• %s: need %s %s, have %s",
				s.Material, s.Required.String(), s.Unit, s.Available.String())
		}
		return sb.String()
	case errors.Is(err, inventory.ErrStockChanged):
		return "Stock changed while logging. Nothing was saved, please try again."
	case errors.Is(err, service.ErrNotFound):
		return "That recipe no longer exists."
	case errors.As(err, &verr):
		return verr.Msg
	case errors.As(err, &badRc), errors.As(err, &badIn):
		return "The recipe is not usable: " + err.Error()
	default:
		return "Something went wrong, please try again."
	}
}

func parseQuantity(text string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, errors.New("not a number")
	}
	if n <= 0 {
		return 0, errors.New("quantity must be at least 1")
	}
	return n, nil
}

func parseMinutes(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, errors.New("not a number")
	}
	if n < 0 {
		return 0, errors.New("minutes cannot be negative")
	}
	return n, nil
}
