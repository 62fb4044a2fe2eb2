package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"itasset/src/schemas"
	"itasset/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetAllAssets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	owner, err := ownerFromContext(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	containerID := chi.URLParam(r, "id")
	if err := authorize(owner, containerID); err != nil {
		h.HandleErrors(w, err)
		return
	}

	assets, err := h.Assets.GetAll(ctx, containerID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, assets, http.StatusOK)
}

func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	owner, err := ownerFromContext(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	containerID := chi.URLParam(r, "id")
	if err := authorize(owner, containerID); err != nil {
		h.HandleErrors(w, err)
		return
	}

	req := new(schemas.CreateAssetRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.BadRequest(err.Error()))
		return
	}

	asset, err := h.Assets.Create(ctx, containerID, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, asset, http.StatusCreated)
}

func (h *Handler) GetAssetByID(w http.ResponseWriter, r *http.Request) {
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

	asset, err := h.Assets.GetByID(ctx, id)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, asset, http.StatusOK)
}

func (h *Handler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
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

	req := new(schemas.UpdateAssetRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.BadRequest(err.Error()))
		return
	}

	asset, err := h.Assets.Update(ctx, id, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, asset, http.StatusOK)
}

func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Assets.Delete(ctx, id); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, map[string]string{"deleted": id}, http.StatusOK)
}
