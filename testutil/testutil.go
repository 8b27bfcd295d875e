// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/pollbook/cliparse"
	"github.com/danielhkuo/pollbook/db"
)

// SetupTestDB creates a fresh SQLite archive database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "archive.db")
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    "file:test.db",
		DatabaseType:   "sqlite",
		AllowedOrigins: []string{"*"},
		Parallelism:    1,
	}
}

// Election describes a seeded election row
type Election struct {
	ID                int64
	GeneralElectionID int64
	Constituency      string
	Year              int
	Month             string
	Office            string
	CountyBoroughUniv string
	ByElectionGeneral string
	Contested         int
	HasData           int
}

// AddElection inserts an election and its constituency (if new)
func AddElection(t *testing.T, conn *sql.DB, e Election) int64 {
	t.Helper()

	if e.Office == "" {
		e.Office = "parliament"
	}

	var constituencyID int64
	err := conn.QueryRow(`SELECT constituency_id FROM constituencies WHERE constituency = ?`, e.Constituency).Scan(&constituencyID)
	if err == sql.ErrNoRows {
		res, err := conn.Exec(`
			INSERT INTO constituencies (constituency, lat, lng)
			VALUES (?, 51.5, -0.12)
		`, e.Constituency)
		if err != nil {
			t.Fatalf("Failed to create constituency: %v", err)
		}
		constituencyID, _ = res.LastInsertId()
	} else if err != nil {
		t.Fatalf("Failed to look up constituency: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO elections (election_id, general_election_id, constituency_id, constituency,
			election_year, election_month, office, countyboroughuniv, by_election_general, contested, has_data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.GeneralElectionID, constituencyID, e.Constituency, e.Year, e.Month,
		e.Office, e.CountyBoroughUniv, e.ByElectionGeneral, e.Contested, e.HasData)
	if err != nil {
		t.Fatalf("Failed to create election: %v", err)
	}

	return e.ID
}

// AddCandidate inserts a candidate and returns its ID
func AddCandidate(t *testing.T, conn *sql.DB, id int64, name string) int64 {
	t.Helper()

	_, err := conn.Exec(`INSERT INTO candidates (candidate_id, candidate_name) VALUES (?, ?)`, id, name)
	if err != nil {
		t.Fatalf("Failed to create candidate: %v", err)
	}
	return id
}

// Participation describes a candidate standing in an election
type Participation struct {
	CandidateID  int64
	ElectionID   int64
	RunningAs    *string
	Returned     int
	Seated       int
	OverturnedBy *string
}

// AddParticipation links a candidate to an election
func AddParticipation(t *testing.T, conn *sql.DB, p Participation) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO candidates_elections (candidate_id, election_id, running_as, returned, seated, overturned_by)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.CandidateID, p.ElectionID, p.RunningAs, p.Returned, p.Seated, p.OverturnedBy)
	if err != nil {
		t.Fatalf("Failed to create participation: %v", err)
	}
}

// Voter describes a seeded voter row; empty strings are stored as NULL
type Voter struct {
	ID            int64
	Surname       string
	Forename      string
	Occupation    string
	OccupationStd string
	Guild         string
	Address       string
}

// AddVoter inserts a voter
func AddVoter(t *testing.T, conn *sql.DB, v Voter) int64 {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO voters (voter_id, surname, forename, occupation, occupation_std, guild, location_sanitized)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, v.ID, v.Surname, nullable(v.Forename), nullable(v.Occupation),
		nullable(v.OccupationStd), nullable(v.Guild), nullable(v.Address))
	if err != nil {
		t.Fatalf("Failed to create voter: %v", err)
	}
	return v.ID
}

// AddVote records one vote
func AddVote(t *testing.T, conn *sql.DB, voterID, candidateID, electionID int64, round int, rejected bool) {
	t.Helper()

	r := 0
	if rejected {
		r = 1
	}
	_, err := conn.Exec(`
		INSERT INTO votes (voter_id, candidate_id, election_id, vote_round, rejected, poll_date)
		VALUES (?, ?, ?, ?, ?, '1802-07-05')
	`, voterID, candidateID, electionID, round, r)
	if err != nil {
		t.Fatalf("Failed to create vote: %v", err)
	}
}

// AddOccupationClass inserts an occupations_map entry
func AddOccupationClass(t *testing.T, conn *sql.DB, code string, level int, name string) {
	t.Helper()

	_, err := conn.Exec(`INSERT INTO occupations_map (level_code, level_num, level_name) VALUES (?, ?, ?)`, code, level, name)
	if err != nil {
		t.Fatalf("Failed to create occupation class: %v", err)
	}
}

// ClassifyVoter assigns occupation codes to a voter
func ClassifyVoter(t *testing.T, conn *sql.DB, voterID int64, level1, level2 string) {
	t.Helper()

	_, err := conn.Exec(`INSERT INTO voters_occupations (voter_id, level1, level2) VALUES (?, ?, ?)`, voterID, level1, level2)
	if err != nil {
		t.Fatalf("Failed to classify voter: %v", err)
	}
}

// Ptr returns a pointer to s
func Ptr(s string) *string {
	return &s
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, headers map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
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
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
