// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Request types

type CardInput struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description *string  `json:"description"`
	Content     Document `json:"content"`
}

// CreatedByMaxLength matches the max tag on CardSetInput.CreatedBy.
const CreatedByMaxLength = 100

type CardSetInput struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description"`
	CreatedBy   *string `json:"created_by" validate:"omitempty,max=100"`
}

// Position is a pointer so a missing value can be told apart from zero.
// Its range is that of the 32-bit position column.
type MembershipInput struct {
	Position     *int `json:"position" validate:"required,min=-2147483648,max=2147483647"`
	IsCoreBelief bool `json:"is_core_belief"`
}

type PositionUpdate struct {
	CardID       int64 `json:"card_id" validate:"required"`
	Position     *int  `json:"position" validate:"required,min=-2147483648,max=2147483647"`
	IsCoreBelief bool  `json:"is_core_belief"`
}

type ReorderRequest struct {
	Positions []PositionUpdate `json:"positions" validate:"required,min=1,dive"`
}

type ResourceInput struct {
	Title       string  `json:"title" validate:"required,max=200"`
	URL         string  `json:"url" validate:"required"`
	Description *string `json:"description"`
}

// Domain types

type Card struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Content     Document  `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CardWithResources struct {
	Card
	Resources []Resource `json:"resources"`
}

type CardSet struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	CreatedBy     *string   `json:"created_by"`
	RetrievalCode string    `json:"retrieval_code"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CardInSet is a member card as seen from its set.
type CardInSet struct {
	Card
	Position     int  `json:"position"`
	IsCoreBelief bool `json:"is_core_belief"`
}

type CardSetWithCards struct {
	CardSet
	Cards []CardInSet `json:"cards"`
}

type Membership struct {
	ID           int64     `json:"id"`
	CardID       int64     `json:"card_id"`
	CardSetID    int64     `json:"card_set_id"`
	Position     int       `json:"position"`
	IsCoreBelief bool      `json:"is_core_belief"`
	CreatedAt    time.Time `json:"created_at"`
}

type Resource struct {
	ID          int64     `json:"id"`
	CardID      int64     `json:"card_id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Response types

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
