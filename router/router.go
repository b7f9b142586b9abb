// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/voice-map/auth"
	"github.com/danielhkuo/voice-map/cliparse"
	"github.com/danielhkuo/voice-map/handlers"
	"github.com/danielhkuo/voice-map/middleware"
)

// Banner is served at GET /.
const Banner = "Voice Map API is running"

func NewRouter(db *sql.DB, cfg cliparse.Config) (*http.ServeMux, error) {
	mux := http.NewServeMux()

	// Initialize handlers
	cardHandler := handlers.NewCardHandler(db)
	resourceHandler := handlers.NewResourceHandler(db)
	cardSetHandler, err := handlers.NewCardSetHandler(db, cfg)
	if err != nil {
		return nil, err
	}

	// Mutating routes are guarded only when auth is required.
	guard := func(h http.HandlerFunc) http.HandlerFunc { return h }
	if cfg.RequireAuth {
		guard = middleware.RequireAuth(auth.NewJWTVerifier([]byte(cfg.JWTSecret)))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Cards
	mux.HandleFunc("GET /api/cards", middleware.WithLogging(cardHandler.ListCards))
	mux.HandleFunc("GET /api/cards/{id}", middleware.WithLogging(cardHandler.GetCard))
	mux.HandleFunc("POST /api/cards", middleware.WithLogging(guard(cardHandler.CreateCard)))
	mux.HandleFunc("PUT /api/cards/{id}", middleware.WithLogging(guard(cardHandler.UpdateCard)))
	mux.HandleFunc("DELETE /api/cards/{id}", middleware.WithLogging(guard(cardHandler.DeleteCard)))

	// Card sets
	mux.HandleFunc("GET /api/card-sets", middleware.WithLogging(cardSetHandler.ListCardSets))
	mux.HandleFunc("GET /api/card-sets/{id}", middleware.WithLogging(cardSetHandler.GetCardSet))
	mux.HandleFunc("GET /api/card-sets/code/{code}", middleware.WithLogging(cardSetHandler.GetCardSetByCode))
	mux.HandleFunc("POST /api/card-sets", middleware.WithLogging(guard(cardSetHandler.CreateCardSet)))
	mux.HandleFunc("PUT /api/card-sets/{id}", middleware.WithLogging(guard(cardSetHandler.UpdateCardSet)))
	mux.HandleFunc("DELETE /api/card-sets/{id}", middleware.WithLogging(guard(cardSetHandler.DeleteCardSet)))

	// Memberships
	mux.HandleFunc("POST /api/card-sets/{set_id}/cards/{card_id}", middleware.WithLogging(guard(cardSetHandler.AddCardToSet)))
	mux.HandleFunc("DELETE /api/card-sets/{set_id}/cards/{card_id}", middleware.WithLogging(guard(cardSetHandler.RemoveCardFromSet)))
	mux.HandleFunc("PUT /api/card-sets/{set_id}/card-positions", middleware.WithLogging(guard(cardSetHandler.UpdateCardPositions)))

	// Resources
	mux.HandleFunc("GET /api/cards/{card_id}/resources", middleware.WithLogging(resourceHandler.ListResources))
	mux.HandleFunc("POST /api/card/{card_id}/resources", middleware.WithLogging(guard(resourceHandler.AddResource)))
	mux.HandleFunc("PUT /api/resources/{id}", middleware.WithLogging(guard(resourceHandler.UpdateResource)))
	mux.HandleFunc("DELETE /api/resources/{id}", middleware.WithLogging(guard(resourceHandler.DeleteResource)))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(Banner))
	})

	return mux, nil
}

// Wrap applies the server-wide middleware to the router.
func Wrap(h http.Handler) http.Handler {
	return middleware.Recover(middleware.SecurityHeaders(middleware.CORS(h)))
}
