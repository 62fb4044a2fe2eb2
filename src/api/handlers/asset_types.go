package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"itasset/src/schemas"
	"itasset/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetAllAssetTypes(w http.ResponseWriter, r *http.Request) {
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

	types, err := h.AssetTypes.GetAll(ctx, containerID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, types, http.StatusOK)
}

func (h *Handler) CreateAssetType(w http.ResponseWriter, r *http.Request) {
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

	req := new(schemas.CreateAssetTypeRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.BadRequest(err.Error()))
		return
	}

	assetType, err := h.AssetTypes.Create(ctx, containerID, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, assetType, http.StatusCreated)
}

func (h *Handler) GetAssetTypeByID(w http.ResponseWriter, r *http.Request) {
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

	assetType, err := h.AssetTypes.GetByID(ctx, id)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, assetType, http.StatusOK)
}

func (h *Handler) UpdateAssetType(w http.ResponseWriter, r *http.Request) {
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

	req := new(schemas.UpdateAssetTypeRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.BadRequest(err.Error()))
		return
	}

	assetType, err := h.AssetTypes.Update(ctx, id, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, assetType, http.StatusOK)
}

func (h *Handler) DeleteAssetType(w http.ResponseWriter, r *http.Request) {
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

	if err := h.AssetTypes.Delete(ctx, id); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, map[string]string{"deleted": id}, http.StatusOK)
}
