// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/voice-map/cliparse"
	"github.com/danielhkuo/voice-map/db"
)

// TestDBEnv names the environment variable that switches tests from a
// throwaway SQLite file to a PostgreSQL database. The schema in that
// database is dropped and recreated for every test.
const TestDBEnv = "TEST_DATABASE_URL"

// TestJWTSecret signs tokens in tests.
const TestJWTSecret = "test-jwt-secret"

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	dialect := db.SQLite
	dsn := filepath.Join(t.TempDir(), "test.db")
	if url := os.Getenv(TestDBEnv); url != "" {
		dialect = db.Postgres
		dsn = url
	}

	conn, err := db.Open(ctx, dialect, dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if dialect == db.Postgres {
		if err := db.DropSchema(ctx, conn); err != nil {
			t.Fatalf("Failed to clean database: %v", err)
		}
	}

	if err := db.CreateSchema(ctx, conn, dialect); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            5000,
		DatabaseURL:     "test.db",
		DatabaseType:    "sqlite",
		JWTSecret:       TestJWTSecret,
		RequireAuth:     false,
		CodeLength:      8,
		CodeMaxAttempts: 10,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// CreateTestCard inserts a card and returns its ID
func CreateTestCard(t *testing.T, conn *sql.DB, title string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO cards (title, description, content)
		VALUES ($1, 'A test card', '{}')
		RETURNING id
	`, title).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test card: %v", err)
	}

	return id
}

// CreateTestCardSet inserts a card set with the given retrieval code and returns its ID
func CreateTestCardSet(t *testing.T, conn *sql.DB, title, code string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO card_sets (title, description, created_by, retrieval_code)
		VALUES ($1, 'A test set', 'TestUser', $2)
		RETURNING id
	`, title, code).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test card set: %v", err)
	}

	return id
}

// AddTestMembership puts a card into a set at the given position
func AddTestMembership(t *testing.T, conn *sql.DB, setID, cardID int64, position int, isCoreBelief bool) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO cards_to_sets (card_id, card_set_id, position, is_core_belief)
		VALUES ($1, $2, $3, $4)
	`, cardID, setID, position, isCoreBelief)
	if err != nil {
		t.Fatalf("Failed to create test membership: %v", err)
	}
}

// CreateTestResource attaches a resource to a card and returns its ID
func CreateTestResource(t *testing.T, conn *sql.DB, cardID int64, title, url string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO resources (card_id, title, url)
		VALUES ($1, $2, $3)
		RETURNING id
	`, cardID, title, url).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test resource: %v", err)
	}

	return id
}

// CountRows returns the number of rows matching a query like "SELECT COUNT(*) ..."
func CountRows(t *testing.T, conn *sql.DB, query string, args ...any) int {
	t.Helper()

	var n int
	if err := conn.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		var jsonBody []byte
		if s, ok := body.(string); ok {
			jsonBody = []byte(s)
		} else {
			jsonBody, _ = json.Marshal(body)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
