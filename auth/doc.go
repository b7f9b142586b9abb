// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth verifies and issues the bearer tokens that guard mutating
routes.

# Tokens

Tokens are HS256 signed JWTs (github.com/golang-jwt/jwt/v5). The "sub"
claim names the caller:

	verifier := auth.NewJWTVerifier([]byte(cfg.JWTSecret))
	token, err := verifier.Generate("facilitator-1", 24*time.Hour)
	sub, err := verifier.Verify(token)

Verify returns ErrExpiredToken for expired tokens, ErrMissingClaim when
"sub" is absent and an error wrapping ErrInvalidToken for anything else.
Only HS256 is accepted.

# Requests

TokenFromRequest reads the x-auth-token header first, then an
Authorization: Bearer header:

	token, err := auth.TokenFromRequest(r)
	if errors.Is(err, auth.ErrNoToken) { ... }

# Context

The auth middleware stores the verified subject in the request context:

	ctx = auth.WithSubject(ctx, sub)
	sub, ok := auth.SubjectFromContext(r.Context())

Handlers use it as the default created_by of new card sets.
*/
package auth
