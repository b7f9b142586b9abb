// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/voice-map/models"
	"github.com/danielhkuo/voice-map/testutil"
)

func cardOrder(t *testing.T, sets *CardSetStore, setID int64) []int64 {
	t.Helper()
	got, err := sets.Get(context.Background(), setID)
	require.NoError(t, err)

	ids := make([]int64, 0, len(got.Cards))
	for _, c := range got.Cards {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestAddCard_CreatesThenUpdates(t *testing.T) {
	sets, _ := newTestCardSetStore(t)
	conn := sets.conn
	ctx := context.Background()

	setID := testutil.CreateTestCardSet(t, conn, "Set", "ADDCARD1")
	cardID := testutil.CreateTestCard(t, conn, "Card")

	m, created, err := sets.AddCard(ctx, setID, cardID, models.MembershipInput{Position: intPtr(3)})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, cardID, m.CardID)
	assert.Equal(t, setID, m.CardSetID)
	assert.Equal(t, 3, m.Position)
	assert.False(t, m.IsCoreBelief)

	again, created, err := sets.AddCard(ctx, setID, cardID, models.MembershipInput{Position: intPtr(1), IsCoreBelief: true})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, m.ID, again.ID)
	assert.Equal(t, 1, again.Position)
	assert.True(t, again.IsCoreBelief)

	assert.Equal(t, 1, testutil.CountRows(t, conn, `SELECT COUNT(*) FROM cards_to_sets WHERE card_set_id = $1`, setID))
}

func TestAddCard_PositionZeroAllowed(t *testing.T) {
	sets, _ := newTestCardSetStore(t)
	conn := sets.conn

	setID := testutil.CreateTestCardSet(t, conn, "Set", "ZEROPOS1")
	cardID := testutil.CreateTestCard(t, conn, "Card")

	m, _, err := sets.AddCard(context.Background(), setID, cardID, models.MembershipInput{Position: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, m.Position)
}

func TestAddCard_Errors(t *testing.T) {
	sets, _ := newTestCardSetStore(t)
	conn := sets.conn
	ctx := context.Background()

	setID := testutil.CreateTestCardSet(t, conn, "Set", "ADDERR01")
	cardID := testutil.CreateTestCard(t, conn, "Card")

	_, _, err := sets.AddCard(ctx, setID, cardID, models.MembershipInput{})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "position", vErr.Field)

	_, _, err = sets.AddCard(ctx, setID, cardID, models.MembershipInput{Position: intPtr(3000000000)})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "position", vErr.Field)
	assert.Equal(t, "position must be at most 2147483647", vErr.Message)

	_, _, err = sets.AddCard(ctx, setID, cardID, models.MembershipInput{Position: intPtr(-1 << 32)})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "position", vErr.Field)

	_, _, err = sets.AddCard(ctx, setID, 999, models.MembershipInput{Position: intPtr(1)})
	assert.ErrorIs(t, err, ErrCardNotFound)

	_, _, err = sets.AddCard(ctx, 999, cardID, models.MembershipInput{Position: intPtr(1)})
	assert.ErrorIs(t, err, ErrCardSetNotFound)

	assert.Equal(t, 0, testutil.CountRows(t, conn, `SELECT COUNT(*) FROM cards_to_sets`))
}

func TestAddCard_ConcurrentSamePair(t *testing.T) {
	sets, _ := newTestCardSetStore(t)
	conn := sets.conn
	ctx := context.Background()

	setID := testutil.CreateTestCardSet(t, conn, "Set", "RACEPAIR")
	cardID := testutil.CreateTestCard(t, conn, "Card")

	const n = 10
	var wg sync.WaitGroup
	created := make([]bool, n)
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, created[i], errs[i] = sets.AddCard(ctx, setID, cardID, models.MembershipInput{Position: intPtr(i)})
		}(i)
	}
	wg.Wait()

	inserts := 0
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		if created[i] {
			inserts++
		}
	}
	assert.Equal(t, 1, inserts)
	assert.Equal(t, 1, testutil.CountRows(t, conn,
		`SELECT COUNT(*) FROM cards_to_sets WHERE card_set_id = $1 AND card_id = $2`, setID, cardID))
}

func TestRemoveCard(t *testing.T) {
	sets, cards := newTestCardSetStore(t)
	conn := sets.conn
	ctx := context.Background()

	setID := testutil.CreateTestCardSet(t, conn, "Set", "REMOVE01")
	cardID := testutil.CreateTestCard(t, conn, "Card")
	testutil.AddTestMembership(t, conn, setID, cardID, 1, false)

	require.NoError(t, sets.RemoveCard(ctx, setID, cardID))
	assert.Empty(t, cardOrder(t, sets, setID))

	_, err := cards.Get(ctx, cardID)
	assert.NoError(t, err)

	assert.ErrorIs(t, sets.RemoveCard(ctx, setID, cardID), ErrMembershipNotFound)
}

func TestReorder_Applies(t *testing.T) {
	sets, _ := newTestCardSetStore(t)
	conn := sets.conn
	ctx := context.Background()

	setID := testutil.CreateTestCardSet(t, conn, "Set", "REORDER1")
	a := testutil.CreateTestCard(t, conn, "A")
	b := testutil.CreateTestCard(t, conn, "B")
	testutil.AddTestMembership(t, conn, setID, a, 1, false)
	testutil.AddTestMembership(t, conn, setID, b, 2, false)

	require.Equal(t, []int64{a, b}, cardOrder(t, sets, setID))

	err := sets.Reorder(ctx, setID, []models.PositionUpdate{
		{CardID: a, Position: intPtr(3)},
		{CardID: b, Position: intPtr(1), IsCoreBelief: true},
	})
	require.NoError(t, err)

	got, err := sets.Get(ctx, setID)
	require.NoError(t, err)
	require.Len(t, got.Cards, 2)
	assert.Equal(t, b, got.Cards[0].ID)
	assert.Equal(t, 1, got.Cards[0].Position)
	assert.True(t, got.Cards[0].IsCoreBelief)
	assert.Equal(t, a, got.Cards[1].ID)
	assert.Equal(t, 3, got.Cards[1].Position)
	assert.False(t, got.Cards[1].IsCoreBelief)
}

func TestReorder_PartialListLeavesOthers(t *testing.T) {
	sets, _ := newTestCardSetStore(t)
	conn := sets.conn

	setID := testutil.CreateTestCardSet(t, conn, "Set", "PARTIAL1")
	a := testutil.CreateTestCard(t, conn, "A")
	b := testutil.CreateTestCard(t, conn, "B")
	c := testutil.CreateTestCard(t, conn, "C")
	testutil.AddTestMembership(t, conn, setID, a, 1, false)
	testutil.AddTestMembership(t, conn, setID, b, 2, false)
	testutil.AddTestMembership(t, conn, setID, c, 3, false)

	err := sets.Reorder(context.Background(), setID, []models.PositionUpdate{
		{CardID: a, Position: intPtr(4)},
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{b, c, a}, cardOrder(t, sets, setID))
}

func TestReorder_NonMemberRollsBack(t *testing.T) {
	sets, _ := newTestCardSetStore(t)
	conn := sets.conn

	setID := testutil.CreateTestCardSet(t, conn, "Set", "ATOMIC01")
	a := testutil.CreateTestCard(t, conn, "A")
	b := testutil.CreateTestCard(t, conn, "B")
	outsider := testutil.CreateTestCard(t, conn, "Outsider")
	testutil.AddTestMembership(t, conn, setID, a, 1, true)
	testutil.AddTestMembership(t, conn, setID, b, 2, false)

	before, err := sets.Get(context.Background(), setID)
	require.NoError(t, err)

	err = sets.Reorder(context.Background(), setID, []models.PositionUpdate{
		{CardID: a, Position: intPtr(9)},
		{CardID: outsider, Position: intPtr(1)},
		{CardID: b, Position: intPtr(0)},
	})
	require.ErrorIs(t, err, ErrMembershipNotFound)

	after, err := sets.Get(context.Background(), setID)
	require.NoError(t, err)
	assert.Equal(t, before.Cards, after.Cards)
}

func TestReorder_Errors(t *testing.T) {
	sets, _ := newTestCardSetStore(t)
	conn := sets.conn
	ctx := context.Background()

	setID := testutil.CreateTestCardSet(t, conn, "Set", "REORDERR")
	a := testutil.CreateTestCard(t, conn, "A")
	testutil.AddTestMembership(t, conn, setID, a, 1, false)

	tests := []struct {
		name  string
		items []models.PositionUpdate
		field string
	}{
		{"empty list", nil, "positions"},
		{"missing position", []models.PositionUpdate{{CardID: a}}, "positions[0].position"},
		{"missing card id", []models.PositionUpdate{{Position: intPtr(1)}}, "positions[0].card_id"},
		{"position above int32", []models.PositionUpdate{{CardID: a, Position: intPtr(1 << 31)}}, "positions[0].position"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sets.Reorder(ctx, setID, tt.items)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}

	err := sets.Reorder(ctx, 999, []models.PositionUpdate{{CardID: a, Position: intPtr(1)}})
	assert.ErrorIs(t, err, ErrCardSetNotFound)
}
