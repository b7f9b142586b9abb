// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store implements persistence for cards, card sets, resources and
card set memberships.

# Stores

Each entity has a store wrapping a *sql.DB:

	cards := store.NewCardStore(conn)
	resources := store.NewResourceStore(conn)
	sets, err := store.NewCardSetStore(conn, codegen.WithLength(8))

Queries use $N placeholders and RETURNING, which both PostgreSQL (lib/pq)
and SQLite (modernc.org/sqlite) accept, so one set of SQL serves both
backends.

# Validation

Create and update operations validate their input with
go-playground/validator before touching the database. A rejected field is
returned as *ValidationError naming the JSON field:

	_, err := cards.Create(ctx, models.CardInput{})
	var vErr *store.ValidationError
	errors.As(err, &vErr) // vErr.Field == "title"

# Errors

Missing rows are reported with sentinel errors that all wrap ErrNotFound:

  - ErrCardNotFound
  - ErrCardSetNotFound
  - ErrResourceNotFound
  - ErrMembershipNotFound

Card set creation can also fail with codegen.ErrExhausted when no unique
retrieval code could be found.

# Memberships

CardSetStore.AddCard inserts a card into a set or, when the pair already
exists, updates its position and core belief flag. CardSetStore.Reorder
applies a batch of position updates inside db.WithTx: if any listed card
is not a member of the set the whole batch is rolled back.

# Cascades

Deleting a card removes its resources and memberships. Deleting a card set
removes its memberships but leaves the cards in place. Both rely on
ON DELETE CASCADE in the schema.
*/
package store
