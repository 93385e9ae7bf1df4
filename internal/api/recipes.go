package api

import (
	"net/http"

	"github.com/avinashchandan12/bake-ready-core/internal/domain/recipes"
)

func (h *handler) listRecipes(w http.ResponseWriter, r *http.Request) {
	items, err := h.d.Recipes.List(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	ok(w, items)
}

func (h *handler) createRecipe(w http.ResponseWriter, r *http.Request) {
	var in recipes.Input
	if !decode(w, r, &in) {
		return
	}
	if err := in.Normalize(); err != nil {
		invalid(w, err)
		return
	}
	rc, err := h.d.Recipes.Create(r.Context(), in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	created(w, rc)
}

func (h *handler) getRecipe(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	rc, err := h.d.Recipes.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if rc == nil {
		notFound(w)
		return
	}
	ok(w, rc)
}

func (h *handler) updateRecipe(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	var in recipes.Input
	if !decode(w, r, &in) {
		return
	}
	if err := in.Normalize(); err != nil {
		invalid(w, err)
		return
	}
	rc, err := h.d.Recipes.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if rc == nil {
		notFound(w)
		return
	}
	ok(w, rc)
}

func (h *handler) deleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	found, err := h.d.Recipes.Delete(r.Context(), id)
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

func (h *handler) estimate(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	if h.d.Production == nil {
		notFound(w)
		return
	}
	est, err := h.d.Production.Estimate(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	ok(w, est)
}
