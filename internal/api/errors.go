package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/avinashchandan12/bake-ready-core/internal/domain/grn"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/inventory"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/orders"
	"github.com/avinashchandan12/bake-ready-core/internal/infra/db"
	"github.com/avinashchandan12/bake-ready-core/internal/production"
	"github.com/avinashchandan12/bake-ready-core/internal/service"
)

// writeError maps domain and service errors onto HTTP statuses. Anything
// unrecognised is logged and reported as a 500 without detail.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	var (
		short    *production.InsufficientStockError
		badRcp   *production.InvalidRecipeError
		badInput *production.InvalidInputError
		verr     *service.ValidationError
	)
	switch {
	case errors.As(err, &verr):
		fail(w, http.StatusUnprocessableEntity, verr.Msg)
	case errors.As(err, &badRcp), errors.As(err, &badInput):
		fail(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &short):
		failWith(w, http.StatusConflict, "Insufficient stock", short.Shortages)
	case errors.Is(err, inventory.ErrStockChanged):
		fail(w, http.StatusConflict, "Stock changed or is insufficient; reload and retry")
	case errors.Is(err, service.ErrNotFound), errors.Is(err, inventory.ErrUnknownMaterial):
		notFound(w)
	case errors.Is(err, grn.ErrAlreadyReceived),
		errors.Is(err, orders.ErrInvoiceExists),
		errors.Is(err, orders.ErrAlreadyPaid),
		errors.Is(err, orders.ErrCancelled):
		fail(w, http.StatusConflict, err.Error())
	case db.IsForeignKeyViolation(err):
		fail(w, http.StatusConflict, "Record is referenced by or references missing data")
	case db.IsUniqueViolation(err):
		fail(w, http.StatusConflict, "Record already exists")
	default:
		log.Error("request failed", "err", err)
		fail(w, http.StatusInternalServerError, "Internal server error")
	}
}
