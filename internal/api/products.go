package api

import (
	"net/http"

	"github.com/avinashchandan12/bake-ready-core/internal/domain/catalog"
)

func (h *handler) listProducts(w http.ResponseWriter, r *http.Request) {
	items, err := h.d.Products.ListProducts(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	ok(w, items)
}

func (h *handler) listCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.d.Products.ListCategories(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if cats == nil {
		cats = []string{}
	}
	ok(w, cats)
}

func (h *handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var in catalog.ProductInput
	if !decode(w, r, &in) {
		return
	}
	if err := in.Normalize(); err != nil {
		invalid(w, err)
		return
	}
	p, err := h.d.Products.CreateProduct(r.Context(), in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	h.catalogChanged(r)
	created(w, p)
}

func (h *handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	p, err := h.d.Products.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if p == nil {
		notFound(w)
		return
	}
	ok(w, p)
}

func (h *handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	var in catalog.ProductInput
	if !decode(w, r, &in) {
		return
	}
	if err := in.Normalize(); err != nil {
		invalid(w, err)
		return
	}
	p, err := h.d.Products.UpdateProduct(r.Context(), id, in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if p == nil {
		notFound(w)
		return
	}
	h.catalogChanged(r)
	ok(w, p)
}

func (h *handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	found, err := h.d.Products.DeleteProduct(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if !found {
		notFound(w)
		return
	}
	h.catalogChanged(r)
	noContent(w)
}
