package payments

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avinashchandan12/bake-ready-core/internal/domain/orders"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type stubPayer struct {
	inv   *orders.Invoice
	err   error
	calls int
}

func (s *stubPayer) MarkPaid(context.Context, uuid.UUID) (*orders.Invoice, error) {
	s.calls++
	return s.inv, s.err
}

func serve(h http.Handler, query string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payments/pay"+query, nil))
	return rec
}

func newHandler(p InvoicePayer) *Handler {
	return NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), p)
}

func TestHandler_Pays(t *testing.T) {
	inv := &orders.Invoice{ID: uuid.New(), TotalAmount: decimal.RequireFromString("46.2"), Status: orders.InvoicePaid}
	p := &stubPayer{inv: inv}

	rec := serve(newHandler(p), "?invoice="+inv.ID.String())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Payment received")
	assert.Contains(t, rec.Body.String(), "46.20")
	assert.Equal(t, 1, p.calls)
}

func TestHandler_AlreadyPaid(t *testing.T) {
	inv := &orders.Invoice{ID: uuid.New(), TotalAmount: decimal.NewFromInt(10)}
	rec := serve(newHandler(&stubPayer{inv: inv, err: orders.ErrAlreadyPaid}), "?invoice="+inv.ID.String())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Already paid")
}

func TestHandler_Errors(t *testing.T) {
	cases := []struct {
		name  string
		query string
		payer *stubPayer
		want  int
	}{
		{"missing param", "", &stubPayer{}, http.StatusBadRequest},
		{"bad id", "?invoice=123", &stubPayer{}, http.StatusBadRequest},
		{"unknown invoice", "?invoice=" + uuid.NewString(), &stubPayer{}, http.StatusNotFound},
		{"store failure", "?invoice=" + uuid.NewString(), &stubPayer{err: errors.New("boom")}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, serve(newHandler(tc.payer), tc.query).Code)
		})
	}
}

func TestService_PaymentURL(t *testing.T) {
	id := uuid.MustParse("6f1c1f5e-8a47-4a5e-9f44-2b8d0f1a9c11")
	s := NewService("https://bakery.example/")
	assert.Equal(t, "https://bakery.example/payments/pay?invoice=6f1c1f5e-8a47-4a5e-9f44-2b8d0f1a9c11", s.PaymentURL(id))
}
