// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/danielhkuo/voice-map/models"
	"github.com/danielhkuo/voice-map/testutil"
)

func TestAddResource(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewResourceHandler(db)

	cardID := strconv.FormatInt(testutil.CreateTestCard(t, db, "Card"), 10)

	testCases := []struct {
		name           string
		cardID         string
		body           interface{}
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "valid resource",
			cardID:         cardID,
			body:           map[string]interface{}{"title": "Article", "url": "https://example.com/a"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing url",
			cardID:         cardID,
			body:           map[string]interface{}{"title": "Article"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "url is required",
		},
		{
			name:           "missing card",
			cardID:         "999",
			body:           map[string]interface{}{"title": "Article", "url": "https://example.com/a"},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Card not found",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/card/"+tc.cardID+"/resources", tc.body, nil)
			req.SetPathValue("card_id", tc.cardID)
			w := httptest.NewRecorder()

			handler.AddResource(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)

			if tc.expectedMsg != "" {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Message != tc.expectedMsg {
					t.Errorf("Expected message '%s', got '%s'", tc.expectedMsg, resp.Message)
				}
			}
		})
	}
}

func TestListResources(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewResourceHandler(db)

	cardID := testutil.CreateTestCard(t, db, "Card")
	testutil.CreateTestResource(t, db, cardID, "One", "https://example.com/1")
	testutil.CreateTestResource(t, db, cardID, "Two", "https://example.com/2")

	idStr := strconv.FormatInt(cardID, 10)
	req := httptest.NewRequest("GET", "/api/cards/"+idStr+"/resources", nil)
	req.SetPathValue("card_id", idStr)
	w := httptest.NewRecorder()

	handler.ListResources(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resources []models.Resource
	testutil.AssertJSON(t, w, &resources)
	if len(resources) != 2 {
		t.Fatalf("Expected 2 resources, got %d", len(resources))
	}
	if resources[0].Title != "One" {
		t.Errorf("Expected first resource 'One', got '%s'", resources[0].Title)
	}
}

func TestUpdateAndDeleteResource(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewResourceHandler(db)

	cardID := testutil.CreateTestCard(t, db, "Card")
	resourceID := strconv.FormatInt(testutil.CreateTestResource(t, db, cardID, "Old", "https://example.com/old"), 10)

	req := testutil.MakeRequest("PUT", "/api/resources/"+resourceID,
		map[string]interface{}{"title": "New", "url": "https://example.com/new"}, nil)
	req.SetPathValue("id", resourceID)
	w := httptest.NewRecorder()

	handler.UpdateResource(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resource models.Resource
	testutil.AssertJSON(t, w, &resource)
	if resource.Title != "New" || resource.URL != "https://example.com/new" {
		t.Errorf("Expected updated resource, got %+v", resource)
	}

	req = httptest.NewRequest("DELETE", "/api/resources/"+resourceID, nil)
	req.SetPathValue("id", resourceID)
	w = httptest.NewRecorder()

	handler.DeleteResource(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	req = httptest.NewRequest("DELETE", "/api/resources/"+resourceID, nil)
	req.SetPathValue("id", resourceID)
	w = httptest.NewRecorder()

	handler.DeleteResource(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}
