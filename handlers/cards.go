// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/voice-map/middleware"
	"github.com/danielhkuo/voice-map/models"
	"github.com/danielhkuo/voice-map/store"
)

type CardHandler struct {
	cards *store.CardStore
}

func NewCardHandler(db *sql.DB) *CardHandler {
	return &CardHandler{cards: store.NewCardStore(db)}
}

// ListCards handles GET /api/cards
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cards.List(r.Context())
	if err != nil {
		writeStoreError(w, r, "list cards", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, cards)
}

// GetCard handles GET /api/cards/{id}
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	card, err := h.cards.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, "get card", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, card)
}

// CreateCard handles POST /api/cards
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req models.CardInput
	if !decodeBody(w, r, &req) {
		return
	}

	card, err := h.cards.Create(r.Context(), req)
	if err != nil {
		writeStoreError(w, r, "create card", err)
		return
	}

	slog.Info("card created", "card_id", card.ID)
	middleware.JSONResponse(w, http.StatusCreated, card)
}

// UpdateCard handles PUT /api/cards/{id}
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.CardInput
	if !decodeBody(w, r, &req) {
		return
	}

	card, err := h.cards.Update(r.Context(), id, req)
	if err != nil {
		writeStoreError(w, r, "update card", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, card)
}

// DeleteCard handles DELETE /api/cards/{id}
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.cards.Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, "delete card", err)
		return
	}

	slog.Info("card deleted", "card_id", id)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Card deleted successfully"})
}
