package api

import (
	"net/http"
	"time"

	"github.com/avinashchandan12/bake-ready-core/internal/domain/losses"
)

func (h *handler) recordLoss(w http.ResponseWriter, r *http.Request) {
	var in losses.Input
	if !decode(w, r, &in) {
		return
	}
	l, err := h.d.LossService.Record(r.Context(), in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	created(w, l)
}

func (h *handler) listLosses(w http.ResponseWriter, r *http.Request) {
	if h.d.Losses == nil {
		notFound(w)
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
	items, err := h.d.Losses.List(r.Context(), from, to)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	ok(w, items)
}

// lossTotal sums the estimated cost of losses since ?from=, default the
// first day of the current month.
func (h *handler) lossTotal(w http.ResponseWriter, r *http.Request) {
	if h.d.Losses == nil {
		notFound(w)
		return
	}
	from, good := queryDate(w, r, "from")
	if !good {
		return
	}
	if from.IsZero() {
		now := time.Now()
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
	total, err := h.d.Losses.TotalCost(r.Context(), from)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	ok(w, map[string]any{"from": from.Format(time.DateOnly), "total_estimated_cost": total})
}
