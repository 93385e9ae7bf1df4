// Package api exposes the back office over JSON HTTP.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/avinashchandan12/bake-ready-core/internal/infra/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const maxBody = 1 << 20

type handler struct {
	log *slog.Logger
	d   Deps
}

// NewRouter builds the /api sub-router.
func NewRouter(log *slog.Logger, d Deps) http.Handler {
	h := &handler{log: log, d: d}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metrics.Middleware)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	if d.Products != nil {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.listProducts)
			r.Post("/", h.createProduct)
			r.Get("/categories", h.listCategories)
			r.Get("/{id}", h.getProduct)
			r.Put("/{id}", h.updateProduct)
			r.Delete("/{id}", h.deleteProduct)
		})
	}
	if d.Materials != nil {
		r.Route("/raw-materials", func(r chi.Router) {
			r.Get("/", h.listMaterials)
			r.Post("/", h.createMaterial)
			r.Get("/low-stock", h.lowStock)
			r.Get("/{id}", h.getMaterial)
			r.Put("/{id}", h.updateMaterial)
			r.Delete("/{id}", h.deleteMaterial)
			r.Get("/{id}/movements", h.listMovements)
			r.Post("/{id}/adjust", h.adjustMaterial)
		})
	}
	if d.Recipes != nil {
		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", h.listRecipes)
			r.Post("/", h.createRecipe)
			r.Get("/{id}", h.getRecipe)
			r.Put("/{id}", h.updateRecipe)
			r.Delete("/{id}", h.deleteRecipe)
			r.Get("/{id}/estimate", h.estimate)
		})
	}
	if d.Production != nil {
		r.Route("/production-logs", func(r chi.Router) {
			r.Get("/", h.listProductionLogs)
			r.Post("/", h.logProduction)
			r.Get("/{id}", h.getProductionLog)
		})
	}
	if d.LossService != nil {
		r.Route("/losses", func(r chi.Router) {
			r.Get("/", h.listLosses)
			r.Post("/", h.recordLoss)
			r.Get("/total", h.lossTotal)
		})
	}
	if d.Vendors != nil {
		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", h.listVendors)
			r.Post("/", h.createVendor)
			r.Get("/{id}", h.getVendor)
			r.Put("/{id}", h.updateVendor)
			r.Delete("/{id}", h.deleteVendor)
			r.Get("/{id}/stats", h.vendorStats)
		})
	}
	if d.Clients != nil {
		r.Route("/clients", func(r chi.Router) {
			r.Get("/", h.listClients)
			r.Post("/", h.createClient)
			r.Get("/{id}", h.getClient)
			r.Put("/{id}", h.updateClient)
			r.Delete("/{id}", h.deleteClient)
			r.Get("/{id}/stats", h.clientStats)
		})
	}
	if d.Orders != nil {
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.listOrders)
			r.Post("/", h.createOrder)
			r.Get("/{id}", h.getOrder)
			r.Put("/{id}", h.updateOrder)
			r.Patch("/{id}/status", h.setOrderStatus)
			r.Delete("/{id}", h.deleteOrder)
			r.Get("/{id}/invoice", h.getInvoice)
			r.Post("/{id}/invoice", h.createInvoice)
		})
	}
	if d.Receiving != nil {
		r.Route("/grns", func(r chi.Router) {
			r.Get("/", h.listGRNs)
			r.Post("/", h.createGRN)
			r.Get("/next-number", h.nextGRNNumber)
			r.Get("/{id}", h.getGRN)
			r.Delete("/{id}", h.deleteGRN)
			r.Post("/{id}/receive", h.receiveGRN)
		})
		r.Get("/discrepancies", h.listDiscrepancies)
	}
	if d.Transport != nil {
		r.Route("/transport-logs", func(r chi.Router) {
			r.Get("/", h.listTransport)
			r.Post("/", h.createTransport)
			r.Get("/{id}", h.getTransport)
			r.Delete("/{id}", h.deleteTransport)
			r.Patch("/{id}/stops/{clientID}", h.updateStop)
		})
	}
	if d.Dashboard != nil {
		r.Get("/dashboard", h.dashboard)
	}
	if d.Reports != nil {
		r.Route("/stock", func(r chi.Router) {
			r.Get("/export.csv", h.exportCSV)
			r.Get("/export.xlsx", h.exportXLSX)
			r.Post("/import", h.importStocktake)
		})
	}
	return r
}

func pathID(w http.ResponseWriter, r *http.Request, key string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, key))
	if err != nil {
		fail(w, http.StatusBadRequest, "invalid "+key)
		return uuid.Nil, false
	}
	return id, true
}

// queryID parses an optional UUID query parameter.
func queryID(w http.ResponseWriter, r *http.Request, key string) (uuid.UUID, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return uuid.Nil, true
	}
	id, err := uuid.Parse(v)
	if err != nil {
		fail(w, http.StatusBadRequest, "invalid "+key)
		return uuid.Nil, false
	}
	return id, true
}

// queryDate parses an optional YYYY-MM-DD query parameter.
func queryDate(w http.ResponseWriter, r *http.Request, key string) (time.Time, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		fail(w, http.StatusBadRequest, key+" must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return t, true
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		msg := "invalid JSON body"
		var syn *json.SyntaxError
		var typ *json.UnmarshalTypeError
		switch {
		case errors.As(err, &typ):
			msg = "invalid value for " + typ.Field
		case errors.As(err, &syn), errors.Is(err, io.EOF):
		default:
			msg = err.Error()
		}
		fail(w, http.StatusBadRequest, msg)
		return false
	}
	return true
}

func invalid(w http.ResponseWriter, err error) {
	fail(w, http.StatusUnprocessableEntity, err.Error())
}
