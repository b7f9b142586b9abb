// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Voice Map API.

# Handler Types

Each handler is a struct wrapping a store from package store:

  - CardHandler: Card CRUD
  - CardSetHandler: Card set CRUD, memberships and reordering
  - ResourceHandler: Resources attached to cards

Handlers are created via constructor functions that accept *sql.DB:

	cardHandler := handlers.NewCardHandler(db)
	setHandler, err := handlers.NewCardSetHandler(db, cfg)

NewCardSetHandler configures retrieval code generation from
cfg.CodeLength and cfg.CodeMaxAttempts and fails if they are out of range.

# Error Mapping

Store errors are translated in one place:

	store.ValidationError       → 400 with the field message
	store.ErrCardNotFound       → 404 "Card not found"
	store.ErrCardSetNotFound    → 404 "Card set not found"
	store.ErrResourceNotFound   → 404 "Resource not found"
	store.ErrMembershipNotFound → 404 "Card not found in this set"
	codegen.ErrExhausted        → 503
	anything else               → 500 "Server error", cause logged

Malformed bodies get 400 "Invalid JSON" and non-numeric ids get 400.
During reordering a card outside the set is a 400, and nothing is changed.

# Memberships

	POST /api/card-sets/{set_id}/cards/{card_id} → AddCardToSet

Returns 201 with the new membership, or 200 when the card was already in
the set and its position and is_core_belief were updated instead.

# Authenticated Requests

When the auth middleware has stored a subject in the request context,
CreateCardSet uses it as created_by if the body leaves that field out.
*/
package handlers
