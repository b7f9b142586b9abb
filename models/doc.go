// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the Voice Map API.

# Request Types

Inputs decoded from JSON bodies and validated by the store package:

  - CardInput: title (required), description, content
  - CardSetInput: title (required), description, created_by
  - MembershipInput: position (required), is_core_belief
  - ReorderRequest: positions (non-empty list of PositionUpdate)
  - ResourceInput: title and url (required), description

Validation rules live in `validate` struct tags.

# Domain Types

	Card             cards row
	CardWithResources card plus its resources
	CardSet          card_sets row
	CardSetWithCards card set plus member cards ordered by position
	CardInSet        card plus position and is_core_belief
	Membership       cards_to_sets row
	Resource         resources row

Nullable text columns map to *string and serialize as null.

# Documents

Card content is an opaque JSON object:

	card.Content = models.Document{"blocks": []any{}}

Document implements driver.Valuer and sql.Scanner so it can be written to a
JSONB (PostgreSQL) or TEXT (SQLite) column. A nil document is stored as {}.

# Error Response

All errors use a consistent format:

	{
		"error": "Not Found",
		"message": "Card not found"
	}
*/
package models
