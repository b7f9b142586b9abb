// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/voice-map/middleware"
	"github.com/danielhkuo/voice-map/models"
	"github.com/danielhkuo/voice-map/store"
)

type ResourceHandler struct {
	resources *store.ResourceStore
}

func NewResourceHandler(db *sql.DB) *ResourceHandler {
	return &ResourceHandler{resources: store.NewResourceStore(db)}
}

// ListResources handles GET /api/cards/{card_id}/resources
func (h *ResourceHandler) ListResources(w http.ResponseWriter, r *http.Request) {
	cardID, ok := pathID(w, r, "card_id")
	if !ok {
		return
	}

	resources, err := h.resources.ListForCard(r.Context(), cardID)
	if err != nil {
		writeStoreError(w, r, "list resources", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resources)
}

// AddResource handles POST /api/card/{card_id}/resources
func (h *ResourceHandler) AddResource(w http.ResponseWriter, r *http.Request) {
	cardID, ok := pathID(w, r, "card_id")
	if !ok {
		return
	}

	var req models.ResourceInput
	if !decodeBody(w, r, &req) {
		return
	}

	resource, err := h.resources.Create(r.Context(), cardID, req)
	if err != nil {
		writeStoreError(w, r, "add resource", err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, resource)
}

// UpdateResource handles PUT /api/resources/{id}
func (h *ResourceHandler) UpdateResource(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.ResourceInput
	if !decodeBody(w, r, &req) {
		return
	}

	resource, err := h.resources.Update(r.Context(), id, req)
	if err != nil {
		writeStoreError(w, r, "update resource", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resource)
}

// DeleteResource handles DELETE /api/resources/{id}
func (h *ResourceHandler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.resources.Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, "delete resource", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Resource deleted successfully"})
}
