// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package codegen

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type setChecker struct {
	mu    sync.Mutex
	taken map[string]bool
	calls int
	err   error
}

func newSetChecker(codes ...string) *setChecker {
	c := &setChecker{taken: make(map[string]bool)}
	for _, code := range codes {
		c.taken[code] = true
	}
	return c
}

func (c *setChecker) CodeExists(ctx context.Context, code string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return false, c.err
	}
	return c.taken[code], nil
}

func TestGenerate_Length(t *testing.T) {
	for _, n := range []int{1, 4, 8, 12, MaxLength} {
		gen, err := New(newSetChecker(), WithLength(n))
		require.NoError(t, err)

		code, err := gen.Generate(context.Background())
		require.NoError(t, err)
		assert.Len(t, code, n)

		for _, c := range code {
			assert.True(t, strings.ContainsRune(Alphanumeric, c), "unexpected character %q", c)
		}
	}
}

func TestGenerate_AvoidsTakenCodes(t *testing.T) {
	// Two-letter alphabet, length 2: four possible codes, three taken.
	checker := newSetChecker("aa", "ab", "ba")
	gen, err := New(checker, WithAlphabet("ab"), WithLength(2), WithMaxAttempts(1000))
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		code, err := gen.Generate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "bb", code)
	}
}

func TestGenerate_Exhausted(t *testing.T) {
	checker := newSetChecker("aa")
	gen, err := New(checker, WithAlphabet("a"), WithLength(2), WithMaxAttempts(5))
	require.NoError(t, err)

	_, err = gen.Generate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExhausted))

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 5, exhausted.Attempts)
	assert.Equal(t, 5, checker.calls)
}

func TestGenerate_CheckerErrorStopsLoop(t *testing.T) {
	boom := errors.New("connection refused")
	checker := newSetChecker()
	checker.err = boom

	gen, err := New(checker, WithMaxAttempts(10))
	require.NoError(t, err)

	_, err = gen.Generate(context.Background())
	require.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, ErrExhausted))
	assert.Equal(t, 1, checker.calls)
}

func TestGenerate_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen, err := New(newSetChecker())
	require.NoError(t, err)

	_, err = gen.Generate(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestGenerate_Concurrent(t *testing.T) {
	gen, err := New(newSetChecker())
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, err := gen.Generate(context.Background())
			if err == nil && len(code) != DefaultLength {
				err = errors.New("wrong length: " + code)
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	tests := []struct {
		name    string
		checker Checker
		opts    []Option
	}{
		{"nil checker", nil, nil},
		{"zero length", newSetChecker(), []Option{WithLength(0)}},
		{"too long", newSetChecker(), []Option{WithLength(MaxLength + 1)}},
		{"zero attempts", newSetChecker(), []Option{WithMaxAttempts(0)}},
		{"empty alphabet", newSetChecker(), []Option{WithAlphabet("")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.checker, tt.opts...)
			assert.Error(t, err)
		})
	}
}

func TestRandomString_Distribution(t *testing.T) {
	// Every character of a small alphabet should show up over many draws.
	seen := make(map[rune]bool)
	for i := 0; i < 200; i++ {
		s, err := RandomString(4, "xyz")
		require.NoError(t, err)
		for _, c := range s {
			seen[c] = true
		}
	}
	assert.Len(t, seen, 3)
}
