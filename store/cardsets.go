// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/voice-map/codegen"
	"github.com/danielhkuo/voice-map/db"
	"github.com/danielhkuo/voice-map/models"
)

const cardSetColumns = `id, title, description, created_by, retrieval_code, created_at, updated_at`

// insertAttempts bounds how often Create regenerates a code after losing an
// insert race on the UNIQUE retrieval_code constraint.
const insertAttempts = 3

type CardSetStore struct {
	conn *sql.DB
	gen  *codegen.Generator
}

// NewCardSetStore creates a store whose retrieval codes are checked against
// the card_sets table.
func NewCardSetStore(conn *sql.DB, opts ...codegen.Option) (*CardSetStore, error) {
	s := &CardSetStore{conn: conn}
	gen, err := codegen.New(s, opts...)
	if err != nil {
		return nil, err
	}
	s.gen = gen
	return s, nil
}

func scanCardSet(row rowScanner) (models.CardSet, error) {
	var cs models.CardSet
	err := row.Scan(&cs.ID, &cs.Title, &cs.Description, &cs.CreatedBy, &cs.RetrievalCode, &cs.CreatedAt, &cs.UpdatedAt)
	return cs, err
}

// CodeExists implements codegen.Checker.
func (s *CardSetStore) CodeExists(ctx context.Context, code string) (bool, error) {
	found, err := exists(ctx, s.conn, `SELECT EXISTS(SELECT 1 FROM card_sets WHERE retrieval_code = $1)`, code)
	if err != nil {
		return false, fmt.Errorf("failed to check retrieval code: %w", err)
	}
	return found, nil
}

// List returns all card sets, newest first, without their cards.
func (s *CardSetStore) List(ctx context.Context) ([]models.CardSet, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT `+cardSetColumns+`
		FROM card_sets
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query card sets: %w", err)
	}
	defer rows.Close()

	sets := []models.CardSet{}
	for rows.Next() {
		cs, err := scanCardSet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card set: %w", err)
		}
		sets = append(sets, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate card sets: %w", err)
	}
	return sets, nil
}

// Get returns a card set with its cards ordered by position.
func (s *CardSetStore) Get(ctx context.Context, id int64) (*models.CardSetWithCards, error) {
	row := s.conn.QueryRowContext(ctx, `SELECT `+cardSetColumns+` FROM card_sets WHERE id = $1`, id)
	return s.withCards(ctx, row)
}

// GetByCode is Get keyed by the public retrieval code.
func (s *CardSetStore) GetByCode(ctx context.Context, code string) (*models.CardSetWithCards, error) {
	row := s.conn.QueryRowContext(ctx, `SELECT `+cardSetColumns+` FROM card_sets WHERE retrieval_code = $1`, code)
	return s.withCards(ctx, row)
}

func (s *CardSetStore) withCards(ctx context.Context, row *sql.Row) (*models.CardSetWithCards, error) {
	cs, err := scanCardSet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCardSetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query card set: %w", err)
	}

	cards, err := s.listCards(ctx, cs.ID)
	if err != nil {
		return nil, err
	}

	return &models.CardSetWithCards{CardSet: cs, Cards: cards}, nil
}

func (s *CardSetStore) listCards(ctx context.Context, setID int64) ([]models.CardInSet, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT c.id, c.title, c.description, c.content, c.created_at, c.updated_at,
		       cts.position, cts.is_core_belief
		FROM cards c
		JOIN cards_to_sets cts ON c.id = cts.card_id
		WHERE cts.card_set_id = $1
		ORDER BY cts.position, c.id
	`, setID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards for set %d: %w", setID, err)
	}
	defer rows.Close()

	cards := []models.CardInSet{}
	for rows.Next() {
		var c models.CardInSet
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Description, &c.Content, &c.CreatedAt, &c.UpdatedAt,
			&c.Position, &c.IsCoreBelief,
		); err != nil {
			return nil, fmt.Errorf("failed to scan set card: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate set cards: %w", err)
	}
	return cards, nil
}

// Create inserts a card set with a freshly generated retrieval code.
func (s *CardSetStore) Create(ctx context.Context, in models.CardSetInput) (*models.CardSet, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= insertAttempts; attempt++ {
		code, err := s.gen.Generate(ctx)
		if err != nil {
			return nil, err
		}

		cs, err := scanCardSet(s.conn.QueryRowContext(ctx, `
			INSERT INTO card_sets (title, description, created_by, retrieval_code)
			VALUES ($1, $2, $3, $4)
			RETURNING `+cardSetColumns,
			in.Title, in.Description, in.CreatedBy, code,
		))
		if db.IsUniqueViolation(err) {
			slog.Warn("retrieval code taken on insert, regenerating", "code", code, "attempt", attempt)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to insert card set: %w", err)
		}
		return &cs, nil
	}

	return nil, fmt.Errorf("failed to insert card set: %w", &codegen.ExhaustedError{Attempts: insertAttempts})
}

// Update replaces title and description. created_by and the retrieval code
// never change.
func (s *CardSetStore) Update(ctx context.Context, id int64, in models.CardSetInput) (*models.CardSet, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	found, err := cardSetExists(ctx, s.conn, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrCardSetNotFound
	}

	cs, err := scanCardSet(s.conn.QueryRowContext(ctx, `
		UPDATE card_sets
		SET title = $1, description = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
		RETURNING `+cardSetColumns,
		in.Title, in.Description, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCardSetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update card set %d: %w", id, err)
	}
	return &cs, nil
}

// Delete removes a card set and, through ON DELETE CASCADE, its memberships.
// Member cards are left alone.
func (s *CardSetStore) Delete(ctx context.Context, id int64) error {
	found, err := cardSetExists(ctx, s.conn, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrCardSetNotFound
	}

	if _, err := s.conn.ExecContext(ctx, `DELETE FROM card_sets WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete card set %d: %w", id, err)
	}
	return nil
}
