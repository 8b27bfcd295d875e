// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/pollbook/models"
)

func TestEncodeJSON(t *testing.T) {
	ordered := models.NewRecord(2)
	ordered.Set("surname", "Smith")
	ordered.Set("address", "Broad St")

	testCases := []struct {
		name     string
		data     any
		expected string
	}{
		{
			name:     "record keeps column order",
			data:     ordered,
			expected: `{"surname":"Smith","address":"Broad St"}`,
		},
		{
			name:     "quotes become hex escapes",
			data:     []string{`He said "aye"`},
			expected: `["He said \u0022aye\u0022"]`,
		},
		{
			name:     "markup is escaped",
			data:     []string{"<b>Tom & Jerry</b>"},
			expected: `["\u003cb\u003eTom \u0026 Jerry\u003c/b\u003e"]`,
		},
		{
			name:     "escaped backslash before quote",
			data:     []string{`a\"b`},
			expected: `["a\\\u0022b"]`,
		},
		{
			name:     "keys with quotes are escaped too",
			data:     map[string]any{`"k"`: 1},
			expected: `{"\u0022k\u0022":1}`,
		},
		{
			name: "sentinels pass through",
			data: models.SearchResponse{
				NumResults:   0,
				EarliestYear: models.NotApplicable,
				LatestYear:   models.NotApplicable,
				Elections:    models.NoElectionsFound,
			},
			expected: `{"num_results":0,"earliest_year":"not applicable","latest_year":"not applicable","elections":"no elections found for criteria provided"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := EncodeJSON(tc.data)
			if err != nil {
				t.Fatalf("EncodeJSON failed: %v", err)
			}
			if string(got) != tc.expected {
				t.Errorf("Expected %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestEncodeJSON_RepairsLatin1(t *testing.T) {
	row := models.NewRecord(1)
	row.Set("occupation", "caf\xe9 keeper")

	got, err := EncodeJSON([]*models.Record{row})
	if err != nil {
		t.Fatalf("EncodeJSON failed: %v", err)
	}
	if string(got) != `[{"occupation":"café keeper"}]` {
		t.Errorf("Expected repaired text, got %s", got)
	}

	var decoded []map[string]string
	if err := json.Unmarshal(got, &decoded); err != nil {
		t.Fatalf("repaired output is not valid JSON: %v", err)
	}
}

func TestJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()

	JSONResponse(w, http.StatusOK, map[string]string{"message": "hello"})

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if contentType := w.Header().Get("Content-Type"); contentType != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got '%s'", contentType)
	}
	if body := w.Body.String(); body != `{"message":"hello"}` {
		t.Errorf("Expected body without trailing newline, got %q", body)
	}
}

func TestJSONResponse_EncodeFailure(t *testing.T) {
	w := httptest.NewRecorder()

	JSONResponse(w, http.StatusOK, map[string]any{"bad": make(chan int)})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
}

func TestErrorResponse(t *testing.T) {
	testCases := []struct {
		name          string
		statusCode    int
		message       string
		expectedError string
	}{
		{"bad request", http.StatusBadRequest, "constituency, year and month are required", "Bad Request"},
		{"not found", http.StatusNotFound, "no such route", "Not Found"},
		{"internal error", http.StatusInternalServerError, "Database error", "Internal Server Error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			ErrorResponse(w, tc.statusCode, tc.message)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Error != tc.expectedError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectedError, resp.Error)
			}
			if resp.Message != tc.message {
				t.Errorf("Expected message '%s', got '%s'", tc.message, resp.Message)
			}
		})
	}
}

func TestEncodeJSON_SentinelsSurviveRoundTrip(t *testing.T) {
	result := models.NewRecord(5)
	result.Set("election_id", 1)
	result.Set("candidate", "John Smith")
	result.Set("returned", 1)
	result.Set("overturned_by", models.NoSuccessor)
	result.Set("seated", 1)

	voter := models.NewRecord(5)
	voter.Set("surname", "Baker")
	voter.Set("forename", "Bob")
	voter.Set("occupation", models.NotAvailable)
	voter.Set("address", models.NotAvailable)
	voter.Set("voted for", nil)
	book := models.NewRecord(1)
	book.Set("Voting round 1 of 1", []*models.Record{voter})

	election := models.NewRecord(4)
	election.Set("election_id", 1)
	election.Set("results", []*models.Record{result})
	election.Set("votes", book)
	election.Set("tallies", models.InformationNotAvailable)

	body, err := EncodeJSON(models.SearchResponse{
		NumResults:   1,
		EarliestYear: 1802,
		LatestYear:   1802,
		Elections:    []*models.Record{election},
	})
	if err != nil {
		t.Fatalf("EncodeJSON failed: %v", err)
	}

	var decoded struct {
		Elections []struct {
			Results []struct {
				OverturnedBy string `json:"overturned_by"`
			} `json:"results"`
			Votes   map[string][]map[string]any `json:"votes"`
			Tallies string                      `json:"tallies"`
		} `json:"elections"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("Failed to decode %s: %v", body, err)
	}

	got := decoded.Elections[0]
	if got.Results[0].OverturnedBy != models.NoSuccessor {
		t.Errorf("Expected %q, got %q", models.NoSuccessor, got.Results[0].OverturnedBy)
	}
	if got.Tallies != models.InformationNotAvailable {
		t.Errorf("Expected %q, got %q", models.InformationNotAvailable, got.Tallies)
	}
	entry := got.Votes["Voting round 1 of 1"][0]
	if entry["occupation"] != models.NotAvailable || entry["address"] != models.NotAvailable {
		t.Errorf("Expected blank fields to read %q, got %v", models.NotAvailable, entry)
	}
	if v, ok := entry["voted for"]; !ok || v != nil {
		t.Errorf("Expected an explicit null for voted for, got %v", v)
	}
}
