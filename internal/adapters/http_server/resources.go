package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hotel_registry/internal/domain"
)

func (h *Handlers) resourceRoutes(r chi.Router) {
	r.Get("/", h.listResources)
	r.Post("/", h.createResource)
	r.Get("/{id}", h.getResource)
	r.Put("/{id}", h.updateResource)
	r.Delete("/{id}", h.deleteResource)

	r.Get("/{id}/providers", h.getResourceProviders)
	r.Post("/{id}/providers", h.createProvider)
	r.Put("/{id}/providers/{providerID}", h.assignProvider)
	r.Delete("/{id}/providers/{providerID}", h.removeProvider)
}

func (h *Handlers) listResources(w http.ResponseWriter, r *http.Request) {
	out, err := h.Resources.List(r.Context())
	respond(w, r, http.StatusOK, out, err)
}

func (h *Handlers) getResource(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Resources.Get(r.Context(), id)
	respond(w, r, http.StatusOK, out, err)
}

func (h *Handlers) getResourceProviders(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Resources.GetWithProviders(r.Context(), id)
	respond(w, r, http.StatusOK, out, err)
}

func (h *Handlers) createResource(w http.ResponseWriter, r *http.Request) {
	var in domain.Resource
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Resources.Create(r.Context(), in)
	respond(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) updateResource(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in domain.Resource
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Resources.Update(r.Context(), id, in)
	respond(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) deleteResource(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	noContent(w, r, h.Resources.Delete(r.Context(), id))
}

func (h *Handlers) createProvider(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in domain.Provider
	if !decode(w, r, &in) {
		return
	}
	out, err := h.Resources.CreateProvider(r.Context(), id, in)
	respond(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) assignProvider(w http.ResponseWriter, r *http.Request) {
	id, providerID, ok := pathIDs(w, r, "id", "providerID")
	if !ok {
		return
	}
	out, err := h.Resources.AssignProvider(r.Context(), id, providerID)
	respond(w, r, http.StatusCreated, out, err)
}

func (h *Handlers) removeProvider(w http.ResponseWriter, r *http.Request) {
	id, providerID, ok := pathIDs(w, r, "id", "providerID")
	if !ok {
		return
	}
	out, err := h.Resources.RemoveProvider(r.Context(), id, providerID)
	respond(w, r, http.StatusOK, out, err)
}

func (h *Handlers) unlinkProvider(w http.ResponseWriter, r *http.Request) {
	providerID, ok := pathID(w, r, "providerID")
	if !ok {
		return
	}
	noContent(w, r, h.Resources.UnlinkProvider(r.Context(), providerID))
}
