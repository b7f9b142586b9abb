// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/danielhkuo/voice-map/auth"
	"github.com/danielhkuo/voice-map/cliparse"
	"github.com/danielhkuo/voice-map/codegen"
	"github.com/danielhkuo/voice-map/middleware"
	"github.com/danielhkuo/voice-map/models"
	"github.com/danielhkuo/voice-map/store"
)

type CardSetHandler struct {
	sets *store.CardSetStore
}

// NewCardSetHandler fails when the configured code length or attempt count
// is unusable.
func NewCardSetHandler(db *sql.DB, cfg cliparse.Config) (*CardSetHandler, error) {
	sets, err := store.NewCardSetStore(db,
		codegen.WithLength(cfg.CodeLength),
		codegen.WithMaxAttempts(cfg.CodeMaxAttempts),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create card set store: %w", err)
	}
	return &CardSetHandler{sets: sets}, nil
}

// ListCardSets handles GET /api/card-sets
func (h *CardSetHandler) ListCardSets(w http.ResponseWriter, r *http.Request) {
	sets, err := h.sets.List(r.Context())
	if err != nil {
		writeStoreError(w, r, "list card sets", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, sets)
}

// GetCardSet handles GET /api/card-sets/{id}
func (h *CardSetHandler) GetCardSet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	set, err := h.sets.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, "get card set", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, set)
}

// GetCardSetByCode handles GET /api/card-sets/code/{code}
func (h *CardSetHandler) GetCardSetByCode(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code is required")
		return
	}

	set, err := h.sets.GetByCode(r.Context(), code)
	if err != nil {
		writeStoreError(w, r, "get card set by code", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, set)
}

// CreateCardSet handles POST /api/card-sets
func (h *CardSetHandler) CreateCardSet(w http.ResponseWriter, r *http.Request) {
	var req models.CardSetInput
	if !decodeBody(w, r, &req) {
		return
	}

	// The token subject only fills created_by when it fits the column.
	if req.CreatedBy == nil {
		if sub, ok := auth.SubjectFromContext(r.Context()); ok && utf8.RuneCountInString(sub) <= models.CreatedByMaxLength {
			req.CreatedBy = &sub
		}
	}

	set, err := h.sets.Create(r.Context(), req)
	if err != nil {
		writeStoreError(w, r, "create card set", err)
		return
	}

	slog.Info("card set created", "card_set_id", set.ID, "retrieval_code", set.RetrievalCode)
	middleware.JSONResponse(w, http.StatusCreated, set)
}

// UpdateCardSet handles PUT /api/card-sets/{id}
func (h *CardSetHandler) UpdateCardSet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.CardSetInput
	if !decodeBody(w, r, &req) {
		return
	}

	set, err := h.sets.Update(r.Context(), id, req)
	if err != nil {
		writeStoreError(w, r, "update card set", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, set)
}

// DeleteCardSet handles DELETE /api/card-sets/{id}
func (h *CardSetHandler) DeleteCardSet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.sets.Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, "delete card set", err)
		return
	}

	slog.Info("card set deleted", "card_set_id", id)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Card set deleted successfully"})
}

// AddCardToSet handles POST /api/card-sets/{set_id}/cards/{card_id}
// Responds 201 for a new membership and 200 when an existing one was updated.
func (h *CardSetHandler) AddCardToSet(w http.ResponseWriter, r *http.Request) {
	setID, ok := pathID(w, r, "set_id")
	if !ok {
		return
	}
	cardID, ok := pathID(w, r, "card_id")
	if !ok {
		return
	}

	var req models.MembershipInput
	if !decodeBody(w, r, &req) {
		return
	}

	m, created, err := h.sets.AddCard(r.Context(), setID, cardID, req)
	if err != nil {
		writeStoreError(w, r, "add card to set", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	middleware.JSONResponse(w, status, m)
}

// RemoveCardFromSet handles DELETE /api/card-sets/{set_id}/cards/{card_id}
func (h *CardSetHandler) RemoveCardFromSet(w http.ResponseWriter, r *http.Request) {
	setID, ok := pathID(w, r, "set_id")
	if !ok {
		return
	}
	cardID, ok := pathID(w, r, "card_id")
	if !ok {
		return
	}

	if err := h.sets.RemoveCard(r.Context(), setID, cardID); err != nil {
		writeStoreError(w, r, "remove card from set", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Card removed from set successfully"})
}

// UpdateCardPositions handles PUT /api/card-sets/{set_id}/card-positions
func (h *CardSetHandler) UpdateCardPositions(w http.ResponseWriter, r *http.Request) {
	setID, ok := pathID(w, r, "set_id")
	if !ok {
		return
	}

	var req models.ReorderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := h.sets.Reorder(r.Context(), setID, req.Positions)
	if errors.Is(err, store.ErrMembershipNotFound) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "All cards must belong to this set")
		return
	}
	if err != nil {
		writeStoreError(w, r, "update card positions", err)
		return
	}

	slog.Info("card positions updated", "card_set_id", setID, "count", len(req.Positions))
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Card positions updated successfully"})
}
