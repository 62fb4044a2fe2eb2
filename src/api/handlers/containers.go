package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"itasset/src/schemas"
	"itasset/src/utils"

	"github.com/go-chi/chi/v5"
)

const requestTimeout = 10 * time.Second

func (h *Handler) GetAllContainers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	owner, err := ownerFromContext(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	containers, err := h.Containers.GetAll(ctx, owner)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, containers, http.StatusOK)
}

func (h *Handler) CreateContainer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	owner, err := ownerFromContext(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	req := new(schemas.CreateContainerRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.BadRequest(err.Error()))
		return
	}

	container, err := h.Containers.Create(ctx, owner, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, container, http.StatusCreated)
}

func (h *Handler) GetContainerByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	owner, err := ownerFromContext(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	if err := authorize(owner, id); err != nil {
		h.HandleErrors(w, err)
		return
	}

	container, err := h.Containers.GetByID(ctx, id)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, container, http.StatusOK)
}

func (h *Handler) UpdateContainer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	owner, err := ownerFromContext(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	if err := authorize(owner, id); err != nil {
		h.HandleErrors(w, err)
		return
	}

	req := new(schemas.UpdateContainerRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.BadRequest(err.Error()))
		return
	}

	container, err := h.Containers.Update(ctx, id, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, container, http.StatusOK)
}

func (h *Handler) DeleteContainer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	owner, err := ownerFromContext(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	if err := authorize(owner, id); err != nil {
		h.HandleErrors(w, err)
		return
	}

	if err := h.Containers.Delete(ctx, id); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, map[string]string{"deleted": id}, http.StatusOK)
}
