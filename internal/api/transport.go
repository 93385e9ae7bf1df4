package api

import (
	"net/http"

	"github.com/avinashchandan12/bake-ready-core/internal/domain/transport"
)

func (h *handler) listTransport(w http.ResponseWriter, r *http.Request) {
	items, err := h.d.Transport.List(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	ok(w, items)
}

func (h *handler) createTransport(w http.ResponseWriter, r *http.Request) {
	var in transport.Input
	if !decode(w, r, &in) {
		return
	}
	if err := in.Normalize(); err != nil {
		invalid(w, err)
		return
	}
	l, err := h.d.Transport.Create(r.Context(), in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	created(w, l)
}

func (h *handler) getTransport(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	l, err := h.d.Transport.Get(r.Context(), id)
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

func (h *handler) deleteTransport(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	found, err := h.d.Transport.Delete(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if !found {
		notFound(w)
		return
	}
	noContent(w)
}

func (h *handler) updateStop(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	client, good := pathID(w, r, "clientID")
	if !good {
		return
	}
	var req struct {
		Status transport.DeliveryStatus `json:"delivery_status"`
	}
	if !decode(w, r, &req) {
		return
	}
	if !req.Status.Valid() {
		fail(w, http.StatusUnprocessableEntity, "delivery_status must be pending, in_transit or completed")
		return
	}
	found, err := h.d.Transport.UpdateStopStatus(r.Context(), id, client, req.Status)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if !found {
		notFound(w)
		return
	}
	ok(w, map[string]any{"transport_log_id": id, "client_id": client, "delivery_status": req.Status})
}
