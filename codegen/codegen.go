// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package codegen

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// Alphanumeric is the default alphabet (0-9, a-z, A-Z).
const Alphanumeric = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

const (
	DefaultLength      = 8
	DefaultMaxAttempts = 10

	// MaxLength matches the width of card_sets.retrieval_code.
	MaxLength = 20
)

// ErrExhausted is matched by every *ExhaustedError.
var ErrExhausted = errors.New("retrieval code attempts exhausted")

// ExhaustedError is returned when every candidate collided with a stored code.
type ExhaustedError struct {
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("no unique retrieval code after %d attempts", e.Attempts)
}

func (e *ExhaustedError) Is(target error) bool {
	return target == ErrExhausted
}

// Checker reports whether a code is already taken.
type Checker interface {
	CodeExists(ctx context.Context, code string) (bool, error)
}

// Generator produces codes that the Checker does not know about.
// It holds no mutable state and is safe for concurrent use.
type Generator struct {
	checker     Checker
	length      int
	maxAttempts int
	alphabet    string
}

type Option func(*Generator)

func WithLength(n int) Option {
	return func(g *Generator) { g.length = n }
}

func WithMaxAttempts(n int) Option {
	return func(g *Generator) { g.maxAttempts = n }
}

// WithAlphabet replaces the default alphanumeric alphabet.
func WithAlphabet(alphabet string) Option {
	return func(g *Generator) { g.alphabet = alphabet }
}

func New(checker Checker, opts ...Option) (*Generator, error) {
	g := &Generator{
		checker:     checker,
		length:      DefaultLength,
		maxAttempts: DefaultMaxAttempts,
		alphabet:    Alphanumeric,
	}
	for _, opt := range opts {
		opt(g)
	}

	if checker == nil {
		return nil, errors.New("codegen: checker is required")
	}
	if g.length < 1 || g.length > MaxLength {
		return nil, fmt.Errorf("codegen: length must be between 1 and %d, got %d", MaxLength, g.length)
	}
	if g.maxAttempts < 1 {
		return nil, fmt.Errorf("codegen: max attempts must be positive, got %d", g.maxAttempts)
	}
	if g.alphabet == "" {
		return nil, errors.New("codegen: alphabet is empty")
	}

	return g, nil
}

// Length returns the length of generated codes.
func (g *Generator) Length() int {
	return g.length
}

// Generate draws candidates until one is not taken. A checker error stops the
// loop immediately. The UNIQUE constraint on insert is still the final guard
// against two callers picking the same free code.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		code, err := RandomString(g.length, g.alphabet)
		if err != nil {
			return "", err
		}

		taken, err := g.checker.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check retrieval code: %w", err)
		}
		if !taken {
			return code, nil
		}
	}

	return "", &ExhaustedError{Attempts: g.maxAttempts}
}

// RandomString returns n characters drawn uniformly from alphabet.
func RandomString(n int, alphabet string) (string, error) {
	if alphabet == "" {
		return "", errors.New("alphabet is empty")
	}

	limit := big.NewInt(int64(len(alphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to generate random code: %w", err)
		}
		b[i] = alphabet[idx.Int64()]
	}
	return string(b), nil
}
