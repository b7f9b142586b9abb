// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package codegen generates short public retrieval codes for card sets.

# Generation

A Generator draws random alphanumeric candidates (crypto/rand, uniform over
0-9, a-z, A-Z) and asks a Checker whether each one is already stored:

	gen, err := codegen.New(cardSets, codegen.WithLength(8))
	code, err := gen.Generate(ctx)

The loop is bounded. When every attempt collides, Generate returns an
*ExhaustedError, which matches ErrExhausted:

	if errors.Is(err, codegen.ErrExhausted) {
		// 503
	}

A Checker error ends the loop immediately and is returned wrapped.

# Races

Two requests can draw the same free code between the check and the insert.
The UNIQUE constraint on card_sets.retrieval_code rejects the second insert;
the card set store regenerates and retries in that case.
*/
package codegen
