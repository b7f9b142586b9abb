// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/voice-map/codegen"
	"github.com/danielhkuo/voice-map/middleware"
	"github.com/danielhkuo/voice-map/store"
)

// pathID parses a numeric path parameter, writing a 400 when it is not one.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// decodeBody parses the JSON body into v, writing 413 for an oversized body
// and 400 for anything else that fails to decode.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := middleware.ParseJSONBody(w, r, v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Request body must not exceed %d bytes", tooLarge.Limit))
		return false
	}
	middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
	return false
}

// writeStoreError maps a store error to a response. Unexpected errors are
// logged with the failed action and reported as a generic 500.
func writeStoreError(w http.ResponseWriter, r *http.Request, action string, err error) {
	var vErr *store.ValidationError
	switch {
	case errors.As(err, &vErr):
		middleware.ErrorResponse(w, http.StatusBadRequest, vErr.Message)
	case errors.Is(err, store.ErrCardNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Card not found")
	case errors.Is(err, store.ErrCardSetNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Card set not found")
	case errors.Is(err, store.ErrResourceNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Resource not found")
	case errors.Is(err, store.ErrMembershipNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Card not found in this set")
	case errors.Is(err, codegen.ErrExhausted):
		slog.Warn("retrieval code space exhausted", "path", r.URL.Path, "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Could not generate a unique retrieval code, try again")
	default:
		slog.Error("failed to "+action,
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server error")
	}
}
