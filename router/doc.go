// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Voice Map API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints and Wrap
adds the server-wide middleware (panic recovery, security headers, CORS):

	mux, err := router.NewRouter(db, cfg)
	server := http.Server{Handler: router.Wrap(mux)}

NewRouter fails only when the retrieval code settings in cfg are unusable.

# Endpoints

Health and banner:

	GET /health
	GET /

Cards:

	GET    /api/cards      - List cards, newest first
	GET    /api/cards/{id} - Card with its resources
	POST   /api/cards      - Create card
	PUT    /api/cards/{id} - Update card
	DELETE /api/cards/{id} - Delete card with its resources and memberships

Card sets:

	GET    /api/card-sets             - List sets
	GET    /api/card-sets/{id}        - Set with its cards in position order
	GET    /api/card-sets/code/{code} - Same, by retrieval code
	POST   /api/card-sets             - Create set with a fresh retrieval code
	PUT    /api/card-sets/{id}        - Update title and description
	DELETE /api/card-sets/{id}        - Delete set, keeping its cards

Memberships:

	POST   /api/card-sets/{set_id}/cards/{card_id} - Add or update membership
	DELETE /api/card-sets/{set_id}/cards/{card_id} - Remove membership
	PUT    /api/card-sets/{set_id}/card-positions  - Reorder in one transaction

Resources:

	GET    /api/cards/{card_id}/resources - List resources of a card
	POST   /api/card/{card_id}/resources  - Attach resource
	PUT    /api/resources/{id}            - Update resource
	DELETE /api/resources/{id}            - Delete resource

# Authentication

When cfg.RequireAuth is set, every POST, PUT and DELETE route is wrapped
with middleware.RequireAuth using an HS256 verifier built from
cfg.JWTSecret. Reads stay public so shared sets can be opened by code.
*/
package router
