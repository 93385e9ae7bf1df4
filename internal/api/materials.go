package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/avinashchandan12/bake-ready-core/internal/domain/materials"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (h *handler) stockChanged(r *http.Request, id uuid.UUID) {
	if h.d.Events != nil {
		h.d.Events.StockChanged(r.Context(), []uuid.UUID{id})
	}
}

// catalogChanged drops the cached dashboard; product counts live there.
func (h *handler) catalogChanged(r *http.Request) {
	if h.d.Events != nil {
		h.d.Events.StockChanged(r.Context(), nil)
	}
}

func (h *handler) listMaterials(w http.ResponseWriter, r *http.Request) {
	var (
		items []materials.RawMaterial
		err   error
	)
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		items, err = h.d.Materials.SearchByName(r.Context(), q)
	} else {
		items, err = h.d.Materials.List(r.Context())
	}
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	ok(w, items)
}

func (h *handler) lowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.d.Materials.ListLowStock(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	ok(w, items)
}

func (h *handler) createMaterial(w http.ResponseWriter, r *http.Request) {
	var in materials.Input
	if !decode(w, r, &in) {
		return
	}
	if err := in.Normalize(); err != nil {
		invalid(w, err)
		return
	}
	m, err := h.d.Materials.Create(r.Context(), in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	h.stockChanged(r, m.ID)
	created(w, m)
}

func (h *handler) getMaterial(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	m, err := h.d.Materials.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if m == nil {
		notFound(w)
		return
	}
	ok(w, m)
}

// updateMaterial edits name, unit and reorder level. Stock is changed only
// through production, receiving, losses and adjustments.
func (h *handler) updateMaterial(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	var in materials.Input
	if !decode(w, r, &in) {
		return
	}
	if err := in.Normalize(); err != nil {
		invalid(w, err)
		return
	}
	m, err := h.d.Materials.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if m == nil {
		notFound(w)
		return
	}
	h.stockChanged(r, id)
	ok(w, m)
}

func (h *handler) deleteMaterial(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	found, err := h.d.Materials.Delete(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if !found {
		notFound(w)
		return
	}
	if h.d.Events != nil {
		h.d.Events.StockChanged(r.Context(), nil)
	}
	noContent(w)
}

func (h *handler) listMovements(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	if h.d.Movements == nil {
		notFound(w)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := h.d.Movements.ListMovements(r.Context(), id, limit)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	ok(w, items)
}

type adjustRequest struct {
	Counted decimal.Decimal `json:"counted"`
	Note    string          `json:"note"`
}

func (h *handler) adjustMaterial(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	if h.d.Reports == nil {
		notFound(w)
		return
	}
	var req adjustRequest
	if !decode(w, r, &req) {
		return
	}
	diff, err := h.d.Reports.Adjust(r.Context(), id, req.Counted, req.Note)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	ok(w, map[string]any{"raw_material_id": id, "difference": diff})
}
