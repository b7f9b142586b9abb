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

const cardColumns = `id, title, description, content, created_at, updated_at`

type CardStore struct {
	conn *sql.DB
}

func NewCardStore(conn *sql.DB) *CardStore {
	return &CardStore{conn: conn}
}

func scanCard(row rowScanner) (models.Card, error) {
	var c models.Card
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func getCard(ctx context.Context, q db.Querier, id int64) (*models.Card, error) {
	card, err := scanCard(q.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query card %d: %w", id, err)
	}
	return &card, nil
}

// List returns all cards, newest first.
func (s *CardStore) List(ctx context.Context) ([]models.Card, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT `+cardColumns+`
		FROM cards
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	cards := []models.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}
	return cards, nil
}

// Get returns a card together with its resources.
func (s *CardStore) Get(ctx context.Context, id int64) (*models.CardWithResources, error) {
	card, err := getCard(ctx, s.conn, id)
	if err != nil {
		return nil, err
	}

	resources, err := listResources(ctx, s.conn, id)
	if err != nil {
		return nil, err
	}

	return &models.CardWithResources{Card: *card, Resources: resources}, nil
}

// Create inserts a card. Omitted content is stored as an empty document.
func (s *CardStore) Create(ctx context.Context, in models.CardInput) (*models.Card, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	content := in.Content
	if content == nil {
		content = models.Document{}
	}

	card, err := scanCard(s.conn.QueryRowContext(ctx, `
		INSERT INTO cards (title, description, content)
		VALUES ($1, $2, $3)
		RETURNING `+cardColumns,
		in.Title, in.Description, content,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert card: %w", err)
	}
	return &card, nil
}

// Update replaces title, description and content of an existing card.
func (s *CardStore) Update(ctx context.Context, id int64, in models.CardInput) (*models.Card, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	found, err := cardExists(ctx, s.conn, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrCardNotFound
	}

	content := in.Content
	if content == nil {
		content = models.Document{}
	}

	card, err := scanCard(s.conn.QueryRowContext(ctx, `
		UPDATE cards
		SET title = $1, description = $2, content = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
		RETURNING `+cardColumns,
		in.Title, in.Description, content, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update card %d: %w", id, err)
	}
	return &card, nil
}

// Delete removes a card. Its resources and memberships go with it through
// ON DELETE CASCADE.
func (s *CardStore) Delete(ctx context.Context, id int64) error {
	found, err := cardExists(ctx, s.conn, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrCardNotFound
	}

	if _, err := s.conn.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete card %d: %w", id, err)
	}
	return nil
}
