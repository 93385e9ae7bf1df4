package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avinashchandan12/bake-ready-core/internal/domain/catalog"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/grn"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/inventory"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/orders"
	"github.com/avinashchandan12/bake-ready-core/internal/production"
	"github.com/avinashchandan12/bake-ready-core/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memProducts struct {
	items map[uuid.UUID]*catalog.Product
}

func newMemProducts() *memProducts {
	return &memProducts{items: map[uuid.UUID]*catalog.Product{}}
}

func (m *memProducts) CreateProduct(_ context.Context, in catalog.ProductInput) (*catalog.Product, error) {
	p := &catalog.Product{ID: uuid.New(), Name: in.Name, Category: in.Category, Price: in.Price}
	m.items[p.ID] = p
	return p, nil
}

func (m *memProducts) GetProduct(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	return m.items[id], nil
}

func (m *memProducts) UpdateProduct(_ context.Context, id uuid.UUID, in catalog.ProductInput) (*catalog.Product, error) {
	p, found := m.items[id]
	if !found {
		return nil, nil
	}
	p.Name, p.Category, p.Price = in.Name, in.Category, in.Price
	return p, nil
}

func (m *memProducts) DeleteProduct(_ context.Context, id uuid.UUID) (bool, error) {
	_, found := m.items[id]
	delete(m.items, id)
	return found, nil
}

func (m *memProducts) ListProducts(context.Context, string) ([]catalog.Product, error) {
	out := make([]catalog.Product, 0, len(m.items))
	for _, p := range m.items {
		out = append(out, *p)
	}
	return out, nil
}

func (m *memProducts) ListCategories(context.Context) ([]string, error) { return nil, nil }

type stubProduction struct {
	estimate *service.Estimate
	err      error
}

func (s stubProduction) Estimate(context.Context, uuid.UUID) (*service.Estimate, error) {
	return s.estimate, s.err
}

func (s stubProduction) Log(context.Context, service.LogInput) (*service.LogResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &service.LogResult{}, nil
}

type stubOrders struct {
	Orders
	invoiceErr error
}

func (s stubOrders) CreateInvoice(context.Context, uuid.UUID) (*orders.Invoice, error) {
	return nil, s.invoiceErr
}

type stubReports struct {
	ReportService
}

func (stubReports) WriteStockCSV(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, "Name,Stock Quantity\n")
	return err
}

func testRouter(d Deps) http.Handler {
	return NewRouter(slog.New(slog.NewTextHandler(io.Discard, nil)), d)
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestProducts_CreateAndGet(t *testing.T) {
	h := testRouter(Deps{Products: newMemProducts()})

	rec, env := do(t, h, http.MethodPost, "/products", `{"name":" Baguette ","category":"Bread","price":"2.50"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, http.StatusCreated, env.Status)

	data := env.Data.(map[string]any)
	assert.Equal(t, "Baguette", data["name"])
	assert.Equal(t, "2.5", data["price"])

	rec, env = do(t, h, http.MethodGet, "/products/"+data["id"].(string), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bread", env.Data.(map[string]any)["category"])
}

func TestProducts_BadRequests(t *testing.T) {
	h := testRouter(Deps{Products: newMemProducts()})

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"malformed id", http.MethodGet, "/products/not-a-uuid", "", http.StatusBadRequest},
		{"missing", http.MethodGet, "/products/" + uuid.NewString(), "", http.StatusNotFound},
		{"unknown field", http.MethodPost, "/products", `{"name":"x","category":"y","colour":"red"}`, http.StatusBadRequest},
		{"broken json", http.MethodPost, "/products", `{"name":`, http.StatusBadRequest},
		{"failed validation", http.MethodPost, "/products", `{"name":"","category":"y"}`, http.StatusUnprocessableEntity},
		{"delete missing", http.MethodDelete, "/products/" + uuid.NewString(), "", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := do(t, h, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.want, rec.Code)
			assert.Equal(t, tc.want, env.Status)
			assert.NotEmpty(t, env.Message)
		})
	}
}

type recordingEvents struct {
	changed [][]uuid.UUID
}

func (e *recordingEvents) StockChanged(_ context.Context, ids []uuid.UUID) {
	e.changed = append(e.changed, ids)
}

func (e *recordingEvents) DiscrepanciesFound(context.Context, *grn.GRN, []grn.Discrepancy) {}

func TestProducts_WritesRefreshDashboard(t *testing.T) {
	ev := &recordingEvents{}
	h := testRouter(Deps{Products: newMemProducts(), Events: ev})

	rec, env := do(t, h, http.MethodPost, "/products", `{"name":"Rye","category":"Bread","price":"3"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := env.Data.(map[string]any)["id"].(string)
	require.Len(t, ev.changed, 1)
	assert.Nil(t, ev.changed[0])

	rec, _ = do(t, h, http.MethodPut, "/products/"+id, `{"name":"Dark rye","category":"Bread","price":"3.5"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, ev.changed, 2)

	rec, _ = do(t, h, http.MethodGet, "/products/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, ev.changed, 2)

	rec, _ = do(t, h, http.MethodDelete, "/products/"+id, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Len(t, ev.changed, 3)

	rec, _ = do(t, h, http.MethodDelete, "/products/"+id, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Len(t, ev.changed, 3)
}

func TestRouter_UnwiredResourcesAreNotMounted(t *testing.T) {
	h := testRouter(Deps{Products: newMemProducts()})
	req := httptest.NewRequest(http.MethodGet, "/vendors", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductionLog_InsufficientStock(t *testing.T) {
	short := &production.InsufficientStockError{Shortages: []production.Shortage{{
		MaterialID: uuid.New(),
		Material:   "Flour",
		Unit:       "kg",
		Required:   decimal.NewFromInt(8),
		Available:  decimal.NewFromInt(5),
	}}}
	h := testRouter(Deps{Production: stubProduction{err: short}})

	rec, env := do(t, h, http.MethodPost, "/production-logs", `{"recipe_id":"`+uuid.NewString()+`","quantity":4}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Insufficient stock", env.Message)

	errs := env.Errors.([]any)
	require.Len(t, errs, 1)
	first := errs[0].(map[string]any)
	assert.Equal(t, "Flour", first["material"])
	assert.Equal(t, "8", first["required"])
	assert.Equal(t, "5", first["available"])
}

func TestProductionLog_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &service.ValidationError{Msg: "recipe_id is required"}, http.StatusUnprocessableEntity},
		{"invalid input", &production.InvalidInputError{Material: "Flour", Reason: "quantity must be positive"}, http.StatusUnprocessableEntity},
		{"stock changed", inventory.ErrStockChanged, http.StatusConflict},
		{"unknown recipe", service.ErrNotFound, http.StatusNotFound},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := testRouter(Deps{Production: stubProduction{err: tc.err}})
			rec, env := do(t, h, http.MethodPost, "/production-logs", `{"recipe_id":"`+uuid.NewString()+`","quantity":1}`)
			assert.Equal(t, tc.want, rec.Code)
			assert.NotContains(t, env.Message, "connection reset")
		})
	}
}

func TestEstimate(t *testing.T) {
	est := &service.Estimate{ProductName: "Sponge", Capacity: production.Capacity{MaxProducible: 3}}
	h := testRouter(Deps{Production: stubProduction{estimate: est}})
	// Estimates hang off /recipes, which is only mounted with a recipe store.
	req := httptest.NewRequest(http.MethodGet, "/recipes/"+uuid.NewString()+"/estimate", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	h = testRouter(Deps{Recipes: stubRecipes{}, Production: stubProduction{estimate: est}})
	rec2, env := do(t, h, http.MethodGet, "/recipes/"+uuid.NewString()+"/estimate", "")
	require.Equal(t, http.StatusOK, rec2.Code)
	data := env.Data.(map[string]any)
	assert.Equal(t, float64(3), data["max_producible"])
	assert.Equal(t, "Sponge", data["product_name"])
}

type stubRecipes struct {
	Recipes
}

func TestInvoice_Conflict(t *testing.T) {
	h := testRouter(Deps{Orders: stubOrders{invoiceErr: orders.ErrInvoiceExists}})
	rec, _ := do(t, h, http.MethodPost, "/orders/"+uuid.NewString()+"/invoice", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	h = testRouter(Deps{Orders: stubOrders{}})
	rec, _ = do(t, h, http.MethodPost, "/orders/"+uuid.NewString()+"/invoice", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderStatus_RejectsUnknown(t *testing.T) {
	h := testRouter(Deps{Orders: stubOrders{}})
	rec, _ := do(t, h, http.MethodPatch, "/orders/"+uuid.NewString()+"/status", `{"status":"eaten"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestStockExport_CSVAttachment(t *testing.T) {
	h := testRouter(Deps{Reports: stubReports{}})
	req := httptest.NewRequest(http.MethodGet, "/stock/export.csv", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment; filename=\"stock-")
	assert.Equal(t, "Name,Stock Quantity\n", rec.Body.String())
}
