package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/avinashchandan12/bake-ready-core/internal/domain/grn"
)

func (h *handler) listGRNs(w http.ResponseWriter, r *http.Request) {
	vendor, good := queryID(w, r, "vendor_id")
	if !good {
		return
	}
	items, err := h.d.GRNs.List(r.Context(), vendor)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	ok(w, items)
}

// nextGRNNumber previews the number the next GRN would get. The sequence is
// not advanced, so two clients can see the same preview.
func (h *handler) nextGRNNumber(w http.ResponseWriter, r *http.Request) {
	date, good := queryDate(w, r, "date")
	if !good {
		return
	}
	if date.IsZero() {
		date = time.Now()
	}
	n, err := h.d.GRNs.PeekNumber(r.Context(), date)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	ok(w, map[string]string{"grn_number": n})
}

func (h *handler) createGRN(w http.ResponseWriter, r *http.Request) {
	var in grn.Input
	if !decode(w, r, &in) {
		return
	}
	g, found, err := h.d.Receiving.Create(r.Context(), in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if found == nil {
		found = []grn.Discrepancy{}
	}
	created(w, map[string]any{"grn": g, "discrepancies": found})
}

func (h *handler) getGRN(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	g, err := h.d.GRNs.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if g == nil {
		notFound(w)
		return
	}
	ok(w, g)
}

func (h *handler) deleteGRN(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	found, err := h.d.GRNs.Delete(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if !found {
		fail(w, http.StatusNotFound, "GRN not found or already received")
		return
	}
	noContent(w)
}

func (h *handler) receiveGRN(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	g, err := h.d.Receiving.MarkReceived(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if g == nil {
		notFound(w)
		return
	}
	ok(w, g)
}

func (h *handler) listDiscrepancies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := grn.DiscrepancyFilter{
		Type:   grn.DiscrepancyType(q.Get("type")),
		Vendor: strings.TrimSpace(q.Get("vendor")),
	}
	if f.Type != "" && f.Type != grn.Shortage && f.Type != grn.Excess {
		fail(w, http.StatusBadRequest, "type must be shortage or excess")
		return
	}
	var good bool
	if f.From, good = queryDate(w, r, "from"); !good {
		return
	}
	if f.To, good = queryDate(w, r, "to"); !good {
		return
	}
	items, err := h.d.GRNs.ListDiscrepancies(r.Context(), f)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	ok(w, items)
}
