// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /api/cards", middleware.WithLogging(handler))

Every request gets an ID, taken from an incoming X-Request-ID header or
generated with github.com/google/uuid. The ID is echoed in the response,
stored in the request context (RequestIDFromContext) and attached to the
"request started" and "request completed" log lines together with the
status code and duration_ms.

# Authentication

RequireAuth guards a handler with a token check:

	guard := middleware.RequireAuth(auth.NewJWTVerifier(secret))
	mux.HandleFunc("POST /api/cards", middleware.WithLogging(guard(h.CreateCard)))

Missing or invalid tokens are answered with 401. The verified subject is
available to the handler through auth.SubjectFromContext.

# Server-wide Middleware

	handler := middleware.Recover(middleware.SecurityHeaders(middleware.CORS(mux)))

Recover converts handler panics into a 500 "Something broke!" response.
SecurityHeaders sets X-Content-Type-Options, X-Frame-Options,
Referrer-Policy and Cross-Origin-Resource-Policy. CORS allows GET, POST,
PUT, DELETE and OPTIONS with the Content-Type, Authorization, x-auth-token
and X-Request-ID headers.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var in models.CardInput
	if err := middleware.ParseJSONBody(w, r, &in); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

Bodies larger than MaxBodyBytes fail with *http.MaxBytesError.

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used in request logs.
*/
package middleware
