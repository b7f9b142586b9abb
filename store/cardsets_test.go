// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/voice-map/codegen"
	"github.com/danielhkuo/voice-map/models"
	"github.com/danielhkuo/voice-map/testutil"
)

func newTestCardSetStore(t *testing.T, opts ...codegen.Option) (*CardSetStore, *CardStore) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	sets, err := NewCardSetStore(conn, opts...)
	require.NoError(t, err)
	return sets, NewCardStore(conn)
}

func TestCardSetStore_Create(t *testing.T) {
	sets, _ := newTestCardSetStore(t)
	ctx := context.Background()

	created, err := sets.Create(ctx, models.CardSetInput{
		Title:       "Values",
		Description: strPtr("What matters"),
		CreatedBy:   strPtr("alice"),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Len(t, created.RetrievalCode, codegen.DefaultLength)
	for _, c := range created.RetrievalCode {
		assert.Contains(t, codegen.Alphanumeric, string(c))
	}
	require.NotNil(t, created.CreatedBy)
	assert.Equal(t, "alice", *created.CreatedBy)

	bare, err := sets.Create(ctx, models.CardSetInput{Title: "Bare"})
	require.NoError(t, err)
	assert.Nil(t, bare.Description)
	assert.Nil(t, bare.CreatedBy)
	assert.NotEqual(t, created.RetrievalCode, bare.RetrievalCode)
}

func TestCardSetStore_CreateCustomLength(t *testing.T) {
	sets, _ := newTestCardSetStore(t, codegen.WithLength(12))

	created, err := sets.Create(context.Background(), models.CardSetInput{Title: "Long code"})
	require.NoError(t, err)
	assert.Len(t, created.RetrievalCode, 12)
}

func TestCardSetStore_CreateExhausted(t *testing.T) {
	// A one-letter alphabet has exactly one code, so the second set cannot get one.
	sets, _ := newTestCardSetStore(t, codegen.WithAlphabet("Z"), codegen.WithLength(3), codegen.WithMaxAttempts(4))
	ctx := context.Background()

	first, err := sets.Create(ctx, models.CardSetInput{Title: "First"})
	require.NoError(t, err)
	assert.Equal(t, "ZZZ", first.RetrievalCode)

	_, err = sets.Create(ctx, models.CardSetInput{Title: "Second"})
	require.ErrorIs(t, err, codegen.ErrExhausted)

	var exhausted *codegen.ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 4, exhausted.Attempts)

	list, err := sets.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCardSetStore_CreateConcurrentUniqueCodes(t *testing.T) {
	sets, _ := newTestCardSetStore(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	codes := make([]string, n)
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cs, err := sets.Create(ctx, models.CardSetInput{Title: "Concurrent"})
			errs[i] = err
			if err == nil {
				codes[i] = cs.RetrievalCode
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.False(t, seen[codes[i]], "duplicate code %s", codes[i])
		seen[codes[i]] = true
	}
}

// racingChecker reports every code as free, but first stores a card set with
// that code for the next races calls, like a concurrent creator winning the
// insert between the check and Create's own insert.
type racingChecker struct {
	conn  *sql.DB
	races int
	taken []string
}

func (c *racingChecker) CodeExists(ctx context.Context, code string) (bool, error) {
	if c.races > 0 {
		c.races--
		if _, err := c.conn.ExecContext(ctx,
			`INSERT INTO card_sets (title, retrieval_code) VALUES ($1, $2)`, "Racer", code); err != nil {
			return false, err
		}
		c.taken = append(c.taken, code)
	}
	return false, nil
}

func TestCardSetStore_CreateRegeneratesAfterLostInsert(t *testing.T) {
	sets, _ := newTestCardSetStore(t)
	ctx := context.Background()

	checker := &racingChecker{conn: sets.conn, races: 1}
	gen, err := codegen.New(checker)
	require.NoError(t, err)
	sets.gen = gen

	created, err := sets.Create(ctx, models.CardSetInput{Title: "Winner"})
	require.NoError(t, err)
	require.Len(t, checker.taken, 1)
	assert.NotEqual(t, checker.taken[0], created.RetrievalCode)
	assert.Equal(t, 2, testutil.CountRows(t, sets.conn, `SELECT COUNT(*) FROM card_sets`))
}

func TestCardSetStore_CreateExhaustedAfterLostInserts(t *testing.T) {
	sets, _ := newTestCardSetStore(t)
	ctx := context.Background()

	checker := &racingChecker{conn: sets.conn, races: insertAttempts}
	gen, err := codegen.New(checker)
	require.NoError(t, err)
	sets.gen = gen

	_, err = sets.Create(ctx, models.CardSetInput{Title: "Loser"})
	require.ErrorIs(t, err, codegen.ErrExhausted)

	var exhausted *codegen.ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, insertAttempts, exhausted.Attempts)

	assert.Len(t, checker.taken, insertAttempts)
	assert.Equal(t, insertAttempts, testutil.CountRows(t, sets.conn, `SELECT COUNT(*) FROM card_sets`))
}

func TestCardSetStore_CreateValidation(t *testing.T) {
	sets, _ := newTestCardSetStore(t)

	_, err := sets.Create(context.Background(), models.CardSetInput{})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "title", vErr.Field)
	assert.Equal(t, "title is required", vErr.Message)
}

func TestCardSetStore_GetByCodeMatchesGet(t *testing.T) {
	sets, _ := newTestCardSetStore(t)
	conn := sets.conn
	ctx := context.Background()

	setID := testutil.CreateTestCardSet(t, conn, "Shared", "SHARE123")
	a := testutil.CreateTestCard(t, conn, "A")
	b := testutil.CreateTestCard(t, conn, "B")
	testutil.AddTestMembership(t, conn, setID, a, 2, true)
	testutil.AddTestMembership(t, conn, setID, b, 1, false)

	byID, err := sets.Get(ctx, setID)
	require.NoError(t, err)

	byCode, err := sets.GetByCode(ctx, "SHARE123")
	require.NoError(t, err)
	assert.Equal(t, byID, byCode)

	require.Len(t, byID.Cards, 2)
	assert.Equal(t, b, byID.Cards[0].ID)
	assert.Equal(t, 1, byID.Cards[0].Position)
	assert.False(t, byID.Cards[0].IsCoreBelief)
	assert.Equal(t, a, byID.Cards[1].ID)
	assert.True(t, byID.Cards[1].IsCoreBelief)

	_, err = sets.GetByCode(ctx, "NOPE")
	assert.ErrorIs(t, err, ErrCardSetNotFound)

	_, err = sets.Get(ctx, 999)
	assert.ErrorIs(t, err, ErrCardSetNotFound)
}

func TestCardSetStore_GetEmptySet(t *testing.T) {
	sets, _ := newTestCardSetStore(t)
	setID := testutil.CreateTestCardSet(t, sets.conn, "Empty", "EMPTY001")

	got, err := sets.Get(context.Background(), setID)
	require.NoError(t, err)
	assert.NotNil(t, got.Cards)
	assert.Empty(t, got.Cards)
}

func TestCardSetStore_UpdateKeepsCode(t *testing.T) {
	sets, _ := newTestCardSetStore(t)
	ctx := context.Background()

	created, err := sets.Create(ctx, models.CardSetInput{Title: "Before", CreatedBy: strPtr("bob")})
	require.NoError(t, err)

	updated, err := sets.Update(ctx, created.ID, models.CardSetInput{
		Title:       "After",
		Description: strPtr("changed"),
		CreatedBy:   strPtr("mallory"),
	})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, created.RetrievalCode, updated.RetrievalCode)
	require.NotNil(t, updated.CreatedBy)
	assert.Equal(t, "bob", *updated.CreatedBy)

	_, err = sets.Update(ctx, 999, models.CardSetInput{Title: "Ghost"})
	assert.ErrorIs(t, err, ErrCardSetNotFound)
}

func TestCardSetStore_DeleteKeepsCards(t *testing.T) {
	sets, cards := newTestCardSetStore(t)
	conn := sets.conn
	ctx := context.Background()

	setID := testutil.CreateTestCardSet(t, conn, "Gone", "GONE0001")
	cardID := testutil.CreateTestCard(t, conn, "Survivor")
	testutil.AddTestMembership(t, conn, setID, cardID, 1, false)

	require.NoError(t, sets.Delete(ctx, setID))

	_, err := sets.Get(ctx, setID)
	assert.ErrorIs(t, err, ErrCardSetNotFound)
	assert.Equal(t, 0, testutil.CountRows(t, conn, `SELECT COUNT(*) FROM cards_to_sets WHERE card_set_id = $1`, setID))

	_, err = cards.Get(ctx, cardID)
	assert.NoError(t, err)

	assert.ErrorIs(t, sets.Delete(ctx, setID), ErrCardSetNotFound)
}
