// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/voice-map/db"
)

// ErrNotFound is wrapped by every not-found error returned from this package.
var ErrNotFound = errors.New("not found")

var (
	ErrCardNotFound       = fmt.Errorf("card %w", ErrNotFound)
	ErrCardSetNotFound    = fmt.Errorf("card set %w", ErrNotFound)
	ErrResourceNotFound   = fmt.Errorf("resource %w", ErrNotFound)
	ErrMembershipNotFound = fmt.Errorf("membership %w", ErrNotFound)
)

// ValidationError reports a rejected input field. It is returned before any
// query runs.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names so messages match request bodies.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateInput returns the first failing field as a *ValidationError.
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("failed to validate input: %w", err)
	}

	fe := fieldErrs[0]
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}

	var msg string
	switch fe.Tag() {
	case "required":
		msg = field + " is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			msg = fmt.Sprintf("%s must contain at least %s item(s)", field, fe.Param())
		} else {
			msg = fmt.Sprintf("%s must be at least %s", field, fe.Param())
		}
	case "max":
		if fe.Kind() == reflect.String {
			msg = fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		} else {
			msg = fmt.Sprintf("%s must be at most %s", field, fe.Param())
		}
	default:
		msg = field + " is invalid"
	}

	return &ValidationError{Field: field, Message: msg}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func exists(ctx context.Context, q db.Querier, query string, args ...any) (bool, error) {
	var found bool
	if err := q.QueryRowContext(ctx, query, args...).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}

func cardExists(ctx context.Context, q db.Querier, id int64) (bool, error) {
	found, err := exists(ctx, q, `SELECT EXISTS(SELECT 1 FROM cards WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check card %d: %w", id, err)
	}
	return found, nil
}

func cardSetExists(ctx context.Context, q db.Querier, id int64) (bool, error) {
	found, err := exists(ctx, q, `SELECT EXISTS(SELECT 1 FROM card_sets WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check card set %d: %w", id, err)
	}
	return found, nil
}
