package payments

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"

	"github.com/avinashchandan12/bake-ready-core/internal/domain/orders"
	"github.com/google/uuid"
)

type InvoicePayer interface {
	MarkPaid(ctx context.Context, id uuid.UUID) (*orders.Invoice, error)
}

type Handler struct {
	log      *slog.Logger
	invoices InvoicePayer
}

func NewHandler(log *slog.Logger, invoices InvoicePayer) *Handler {
	return &Handler{
		log:      log,
		invoices: invoices,
	}
}

// ServeHTTP emulates a successful payment:
// /payments/pay?invoice=<uuid> marks the invoice paid and renders a short page.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	invoiceStr := r.URL.Query().Get("invoice")
	if invoiceStr == "" {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("missing invoice parameter"))
		return
	}

	invoiceID, err := uuid.Parse(invoiceStr)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("invalid invoice parameter"))
		return
	}

	inv, err := h.invoices.MarkPaid(ctx, invoiceID)
	switch {
	case errors.Is(err, orders.ErrAlreadyPaid):
		h.page(w, http.StatusOK, "Already paid", inv)
		return
	case err != nil:
		h.log.Error("failed to mark invoice as paid",
			"invoice_id", invoiceID,
			"err", err,
		)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("failed to update invoice status"))
		return
	case inv == nil:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("invoice not found"))
		return
	}

	h.log.Info("invoice paid", "invoice_id", inv.ID, "amount", inv.TotalAmount.StringFixed(2))
	h.page(w, http.StatusOK, "Payment received", inv)
}

func (h *Handler) page(w http.ResponseWriter, status int, title string, inv *orders.Invoice) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w,
		"<html><body><h1>%s</h1><p>Invoice %s for %s is marked as paid.</p></body></html>",
		html.EscapeString(title), inv.ID, inv.TotalAmount.StringFixed(2),
	)
}
