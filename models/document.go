// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Document is an opaque JSON object. It is stored as JSONB on PostgreSQL and
// as JSON text on SQLite.
type Document map[string]any

// Value implements driver.Valuer. A nil document is stored as "{}".
// The JSON is passed as a string; lib/pq would send []byte as bytea.
func (d Document) Value() (driver.Value, error) {
	if d == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]any(d))
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (d *Document) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = Document{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Document", src)
	}

	if len(raw) == 0 {
		*d = Document{}
		return nil
	}

	doc := Document{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	if doc == nil {
		doc = Document{}
	}
	*d = doc
	return nil
}
