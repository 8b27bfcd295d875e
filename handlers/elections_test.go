// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/pollbook/archive"
	"github.com/danielhkuo/pollbook/models"
	"github.com/danielhkuo/pollbook/query"
	"github.com/danielhkuo/pollbook/testutil"
)

func setupHandler(t *testing.T) (*ElectionsHandler, func()) {
	t.Helper()
	conn := testutil.SetupTestDB(t)

	testutil.AddElection(t, conn, testutil.Election{ID: 1, Constituency: "Bath", Year: 1802, Month: "July", Contested: 1, HasData: 1})
	testutil.AddCandidate(t, conn, 1, `John "Jack" Smith`)
	testutil.AddParticipation(t, conn, testutil.Participation{CandidateID: 1, ElectionID: 1, Returned: 1, Seated: 1})
	testutil.AddVoter(t, conn, testutil.Voter{ID: 1, Surname: "Adams", Forename: "Ann", OccupationStd: "baker"})
	testutil.AddVote(t, conn, 1, 1, 1, 1, false)
	testutil.AddOccupationClass(t, conn, "1.1", 2, "Food")
	testutil.ClassifyVoter(t, conn, 1, "1", "1.1")

	a := archive.New(conn, query.Question, 1)
	return NewElectionsHandler(a), func() { conn.Close() }
}

func TestSearch_Success(t *testing.T) {
	h, cleanup := setupHandler(t)
	defer cleanup()

	req := testutil.MakeRequest("GET", "/elections?year=1802&include_results=1", nil)
	w := httptest.NewRecorder()

	h.Search(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got %q", ct)
	}

	body := w.Body.String()
	if !strings.HasPrefix(body, `{"num_results":1,"earliest_year":1802,"latest_year":1802,"elections":[{"election_id":1,`) {
		t.Errorf("Unexpected document head: %s", body)
	}
	if strings.Contains(body, `\"`) {
		t.Errorf("Expected quotes inside strings to be hex escaped: %s", body)
	}
	if !strings.Contains(body, `Jack`) {
		t.Errorf("Expected results to be attached: %s", body)
	}
}

func TestSearch_NoMatches(t *testing.T) {
	h, cleanup := setupHandler(t)
	defer cleanup()

	req := testutil.MakeRequest("GET", "/elections?constituency=Nowhere", nil)
	w := httptest.NewRecorder()

	h.Search(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SearchResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.NumResults != 0 || resp.EarliestYear != models.NotApplicable || resp.Elections != models.NoElectionsFound {
		t.Errorf("Expected sentinel response, got %#v", resp)
	}
}

func TestSearch_StoreFailure(t *testing.T) {
	h, cleanup := setupHandler(t)
	cleanup()

	req := testutil.MakeRequest("GET", "/elections", nil)
	w := httptest.NewRecorder()

	h.Search(w, req)

	testutil.AssertStatus(t, w, http.StatusInternalServerError)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message != "Database error" {
		t.Errorf("Expected database error message, got %q", resp.Message)
	}
}

func TestVoters_Success(t *testing.T) {
	h, cleanup := setupHandler(t)
	defer cleanup()

	req := testutil.MakeRequest("GET", "/elections/voters?constituency=bath&year=1802&month=jul", nil)
	w := httptest.NewRecorder()

	h.Voters(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp map[string]struct {
		CandidateID   int              `json:"candidate_id"`
		CandidateName string           `json:"candidate_name"`
		Voters        []map[string]any `json:"voters"`
	}
	testutil.AssertJSON(t, w, &resp)

	entry, ok := resp["1"]
	if !ok {
		t.Fatalf("Expected candidate 1 in response, got %v", resp)
	}
	if entry.CandidateName != `John "Jack" Smith` {
		t.Errorf("Expected decoded candidate name, got %q", entry.CandidateName)
	}
	if len(entry.Voters) != 1 || entry.Voters[0]["level_name"] != "Food" {
		t.Errorf("Expected one Food voter, got %v", entry.Voters)
	}
}

func TestVoters_Unresolved(t *testing.T) {
	h, cleanup := setupHandler(t)
	defer cleanup()

	req := testutil.MakeRequest("GET", "/elections/voters?constituency=Bath&year=1700&month=jul", nil)
	w := httptest.NewRecorder()

	h.Voters(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.String() != "[]" {
		t.Errorf("Expected empty list, got %s", w.Body.String())
	}
}

func TestVoters_MissingParams(t *testing.T) {
	h, cleanup := setupHandler(t)
	defer cleanup()

	testCases := []string{
		"/elections/voters",
		"/elections/voters?constituency=Bath&year=1802",
		"/elections/voters?constituency=&year=1802&month=jul",
	}

	for _, path := range testCases {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Voters(w, testutil.MakeRequest("GET", path, nil))

			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}

func TestOccupations_Success(t *testing.T) {
	h, cleanup := setupHandler(t)
	defer cleanup()

	req := testutil.MakeRequest("GET", "/elections/occupations?constituency=Bath&year=1802&month=7", nil)
	w := httptest.NewRecorder()

	h.Occupations(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	want := `{"1.1":{"level_name":"Food","counts":[{"rejected":0,"n":1}]}}`
	if w.Body.String() != want {
		t.Errorf("Expected %s, got %s", want, w.Body.String())
	}
}
