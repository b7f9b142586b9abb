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

const resourceColumns = `id, card_id, title, url, description, created_at`

type ResourceStore struct {
	conn *sql.DB
}

func NewResourceStore(conn *sql.DB) *ResourceStore {
	return &ResourceStore{conn: conn}
}

func scanResource(row rowScanner) (models.Resource, error) {
	var r models.Resource
	err := row.Scan(&r.ID, &r.CardID, &r.Title, &r.URL, &r.Description, &r.CreatedAt)
	return r, err
}

func listResources(ctx context.Context, q db.Querier, cardID int64) ([]models.Resource, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT `+resourceColumns+`
		FROM resources
		WHERE card_id = $1
		ORDER BY id
	`, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to query resources for card %d: %w", cardID, err)
	}
	defer rows.Close()

	resources := []models.Resource{}
	for rows.Next() {
		r, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		resources = append(resources, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resources: %w", err)
	}
	return resources, nil
}

// ListForCard returns the resources attached to a card.
func (s *ResourceStore) ListForCard(ctx context.Context, cardID int64) ([]models.Resource, error) {
	found, err := cardExists(ctx, s.conn, cardID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrCardNotFound
	}
	return listResources(ctx, s.conn, cardID)
}

func (s *ResourceStore) Get(ctx context.Context, id int64) (*models.Resource, error) {
	r, err := scanResource(s.conn.QueryRowContext(ctx, `SELECT `+resourceColumns+` FROM resources WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query resource %d: %w", id, err)
	}
	return &r, nil
}

// Create attaches a new resource to a card.
func (s *ResourceStore) Create(ctx context.Context, cardID int64, in models.ResourceInput) (*models.Resource, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	found, err := cardExists(ctx, s.conn, cardID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrCardNotFound
	}

	r, err := scanResource(s.conn.QueryRowContext(ctx, `
		INSERT INTO resources (card_id, title, url, description)
		VALUES ($1, $2, $3, $4)
		RETURNING `+resourceColumns,
		cardID, in.Title, in.URL, in.Description,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert resource: %w", err)
	}
	return &r, nil
}

func (s *ResourceStore) Update(ctx context.Context, id int64, in models.ResourceInput) (*models.Resource, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	r, err := scanResource(s.conn.QueryRowContext(ctx, `
		UPDATE resources
		SET title = $1, url = $2, description = $3
		WHERE id = $4
		RETURNING `+resourceColumns,
		in.Title, in.URL, in.Description, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update resource %d: %w", id, err)
	}
	return &r, nil
}

func (s *ResourceStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if _, err := s.conn.ExecContext(ctx, `DELETE FROM resources WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete resource %d: %w", id, err)
	}
	return nil
}
