package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"itasset/src/schemas"
	"itasset/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetAllSubTypes(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	owner, err := ownerFromContext(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	parentTypeID := chi.URLParam(r, "id")
	if err := authorize(owner, parentTypeID); err != nil {
		h.HandleErrors(w, err)
		return
	}

	subTypes, err := h.SubTypes.GetAll(ctx, parentTypeID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, subTypes, http.StatusOK)
}

func (h *Handler) CreateSubType(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	owner, err := ownerFromContext(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	parentTypeID := chi.URLParam(r, "id")
	if err := authorize(owner, parentTypeID); err != nil {
		h.HandleErrors(w, err)
		return
	}

	req := new(schemas.CreateSubTypeRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.BadRequest(err.Error()))
		return
	}

	subType, err := h.SubTypes.Create(ctx, parentTypeID, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, subType, http.StatusCreated)
}

func (h *Handler) GetSubTypeByID(w http.ResponseWriter, r *http.Request) {
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

	subType, err := h.SubTypes.GetByID(ctx, id)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, subType, http.StatusOK)
}

func (h *Handler) UpdateSubType(w http.ResponseWriter, r *http.Request) {
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

	req := new(schemas.UpdateSubTypeRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.BadRequest(err.Error()))
		return
	}

	subType, err := h.SubTypes.Update(ctx, id, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, subType, http.StatusOK)
}

func (h *Handler) DeleteSubType(w http.ResponseWriter, r *http.Request) {
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

	if err := h.SubTypes.Delete(ctx, id); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, map[string]string{"deleted": id}, http.StatusOK)
}
