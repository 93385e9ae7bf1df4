package api

import (
	"net/http"
	"strconv"

	"github.com/avinashchandan12/bake-ready-core/internal/domain/productionlogs"
	"github.com/avinashchandan12/bake-ready-core/internal/service"
)

func (h *handler) logProduction(w http.ResponseWriter, r *http.Request) {
	var in service.LogInput
	if !decode(w, r, &in) {
		return
	}
	res, err := h.d.Production.Log(r.Context(), in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	created(w, res)
}

func (h *handler) listProductionLogs(w http.ResponseWriter, r *http.Request) {
	if h.d.ProductionLogs == nil {
		notFound(w)
		return
	}
	product, good := queryID(w, r, "product_id")
	if !good {
		return
	}
	from, good := queryDate(w, r, "from")
	if !good {
		return
	}
	to, good := queryDate(w, r, "to")
	if !good {
		return
	}
	if !to.IsZero() {
		to = to.AddDate(0, 0, 1)
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	items, err := h.d.ProductionLogs.List(r.Context(), productionlogs.Filter{ProductID: product, From: from, To: to, Limit: limit})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	ok(w, items)
}

func (h *handler) getProductionLog(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	if h.d.ProductionLogs == nil {
		notFound(w)
		return
	}
	l, err := h.d.ProductionLogs.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if l == nil {
		notFound(w)
		return
	}
	ok(w, l)
}
