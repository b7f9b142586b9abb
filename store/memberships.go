// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/voice-map/db"
	"github.com/danielhkuo/voice-map/models"
)

const membershipColumns = `id, card_id, card_set_id, position, is_core_belief, created_at`

func scanMembership(row rowScanner) (models.Membership, error) {
	var m models.Membership
	err := row.Scan(&m.ID, &m.CardID, &m.CardSetID, &m.Position, &m.IsCoreBelief, &m.CreatedAt)
	return m, err
}

// AddCard puts a card into a set, or updates position and flag when it is
// already there. created reports whether a new membership row was inserted.
func (s *CardSetStore) AddCard(ctx context.Context, setID, cardID int64, in models.MembershipInput) (m *models.Membership, created bool, err error) {
	if err := validateInput(in); err != nil {
		return nil, false, err
	}

	found, err := cardExists(ctx, s.conn, cardID)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, ErrCardNotFound
	}

	found, err = cardSetExists(ctx, s.conn, setID)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, ErrCardSetNotFound
	}

	position := *in.Position

	m, err = s.updateMembership(ctx, setID, cardID, position, in.IsCoreBelief)
	if err == nil {
		return m, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, err
	}

	inserted, err := scanMembership(s.conn.QueryRowContext(ctx, `
		INSERT INTO cards_to_sets (card_id, card_set_id, position, is_core_belief)
		VALUES ($1, $2, $3, $4)
		RETURNING `+membershipColumns,
		cardID, setID, position, in.IsCoreBelief,
	))
	if db.IsUniqueViolation(err) {
		// A concurrent request inserted the pair first.
		m, err = s.updateMembership(ctx, setID, cardID, position, in.IsCoreBelief)
		if err != nil {
			return nil, false, err
		}
		return m, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to insert membership: %w", err)
	}
	return &inserted, true, nil
}

// updateMembership returns sql.ErrNoRows when the pair does not exist.
func (s *CardSetStore) updateMembership(ctx context.Context, setID, cardID int64, position int, isCoreBelief bool) (*models.Membership, error) {
	m, err := scanMembership(s.conn.QueryRowContext(ctx, `
		UPDATE cards_to_sets
		SET position = $1, is_core_belief = $2
		WHERE card_id = $3 AND card_set_id = $4
		RETURNING `+membershipColumns,
		position, isCoreBelief, cardID, setID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update membership: %w", err)
	}
	return &m, nil
}

// RemoveCard takes a card out of a set. The pair must exist.
func (s *CardSetStore) RemoveCard(ctx context.Context, setID, cardID int64) error {
	res, err := s.conn.ExecContext(ctx, `
		DELETE FROM cards_to_sets
		WHERE card_id = $1 AND card_set_id = $2
	`, cardID, setID)
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrMembershipNotFound
	}
	return nil
}

// Reorder applies every position update in one transaction. If any listed
// card is not a member of the set nothing is changed. Cards not listed keep
// their positions.
func (s *CardSetStore) Reorder(ctx context.Context, setID int64, items []models.PositionUpdate) error {
	if err := validateInput(models.ReorderRequest{Positions: items}); err != nil {
		return err
	}

	found, err := cardSetExists(ctx, s.conn, setID)
	if err != nil {
		return err
	}
	if !found {
		return ErrCardSetNotFound
	}

	return db.WithTx(ctx, s.conn, func(tx *sql.Tx) error {
		for _, item := range items {
			res, err := tx.ExecContext(ctx, `
				UPDATE cards_to_sets
				SET position = $1, is_core_belief = $2
				WHERE card_id = $3 AND card_set_id = $4
			`, *item.Position, item.IsCoreBelief, item.CardID, setID)
			if err != nil {
				return fmt.Errorf("failed to update position of card %d: %w", item.CardID, err)
			}

			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to read affected rows: %w", err)
			}
			if n == 0 {
				return fmt.Errorf("card %d is not in set %d: %w", item.CardID, setID, ErrMembershipNotFound)
			}
		}
		return nil
	})
}
