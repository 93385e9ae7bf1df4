package api

import (
	"net/http"

	"github.com/avinashchandan12/bake-ready-core/internal/domain/clients"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/vendors"
)

func (h *handler) listVendors(w http.ResponseWriter, r *http.Request) {
	items, err := h.d.Vendors.List(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	ok(w, items)
}

func (h *handler) createVendor(w http.ResponseWriter, r *http.Request) {
	var in vendors.Input
	if !decode(w, r, &in) {
		return
	}
	if err := in.Normalize(); err != nil {
		invalid(w, err)
		return
	}
	v, err := h.d.Vendors.Create(r.Context(), in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	created(w, v)
}

func (h *handler) getVendor(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	v, err := h.d.Vendors.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if v == nil {
		notFound(w)
		return
	}
	ok(w, v)
}

func (h *handler) updateVendor(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	var in vendors.Input
	if !decode(w, r, &in) {
		return
	}
	if err := in.Normalize(); err != nil {
		invalid(w, err)
		return
	}
	v, err := h.d.Vendors.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if v == nil {
		notFound(w)
		return
	}
	ok(w, v)
}

func (h *handler) deleteVendor(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	found, err := h.d.Vendors.Delete(r.Context(), id)
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

func (h *handler) vendorStats(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	v, err := h.d.Vendors.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if v == nil {
		notFound(w)
		return
	}
	st, err := h.d.Vendors.Stats(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	ok(w, map[string]any{"vendor": v, "stats": st})
}

func (h *handler) listClients(w http.ResponseWriter, r *http.Request) {
	items, err := h.d.Clients.List(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	ok(w, items)
}

func (h *handler) createClient(w http.ResponseWriter, r *http.Request) {
	var in clients.Input
	if !decode(w, r, &in) {
		return
	}
	if err := in.Normalize(); err != nil {
		invalid(w, err)
		return
	}
	c, err := h.d.Clients.Create(r.Context(), in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	created(w, c)
}

func (h *handler) getClient(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	c, err := h.d.Clients.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if c == nil {
		notFound(w)
		return
	}
	ok(w, c)
}

func (h *handler) updateClient(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	var in clients.Input
	if !decode(w, r, &in) {
		return
	}
	if err := in.Normalize(); err != nil {
		invalid(w, err)
		return
	}
	c, err := h.d.Clients.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if c == nil {
		notFound(w)
		return
	}
	ok(w, c)
}

func (h *handler) deleteClient(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	found, err := h.d.Clients.Delete(r.Context(), id)
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

func (h *handler) clientStats(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	c, err := h.d.Clients.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if c == nil {
		notFound(w)
		return
	}
	st, err := h.d.Clients.Stats(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	ok(w, map[string]any{"client": c, "stats": st})
}
