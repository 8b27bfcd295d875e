// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates the archive tables for local development and tests.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Constituencies
CREATE TABLE IF NOT EXISTS constituencies (
    constituency_id INTEGER PRIMARY KEY,
    constituency TEXT NOT NULL,
    lat REAL,
    lng REAL
);

-- Elections
CREATE TABLE IF NOT EXISTS elections (
    election_id INTEGER PRIMARY KEY,
    general_election_id INTEGER,
    constituency_id INTEGER NOT NULL REFERENCES constituencies(constituency_id),
    constituency TEXT NOT NULL,
    election_year INTEGER NOT NULL,
    election_month TEXT NOT NULL,
    office TEXT NOT NULL DEFAULT 'parliament',
    countyboroughuniv TEXT,
    by_election_general TEXT,
    contested INTEGER NOT NULL DEFAULT 0,
    has_data INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_elections_lookup ON elections(constituency, election_year, election_month);
CREATE INDEX IF NOT EXISTS idx_elections_year ON elections(election_year);

-- Candidates
CREATE TABLE IF NOT EXISTS candidates (
    candidate_id INTEGER PRIMARY KEY,
    candidate_name TEXT NOT NULL
);

-- Participations
CREATE TABLE IF NOT EXISTS candidates_elections (
    candidate_id INTEGER NOT NULL REFERENCES candidates(candidate_id),
    election_id INTEGER NOT NULL REFERENCES elections(election_id),
    running_as TEXT,
    returned INTEGER NOT NULL DEFAULT 0,
    seated INTEGER NOT NULL DEFAULT 0,
    overturned_by TEXT,
    PRIMARY KEY (candidate_id, election_id)
);

CREATE INDEX IF NOT EXISTS idx_candidates_elections_election ON candidates_elections(election_id);

-- Voters
CREATE TABLE IF NOT EXISTS voters (
    voter_id INTEGER PRIMARY KEY,
    surname TEXT NOT NULL,
    forename TEXT,
    occupation TEXT,
    occupation_std TEXT,
    guild TEXT,
    location_sanitized TEXT
);

-- Votes
CREATE TABLE IF NOT EXISTS votes (
    voter_id INTEGER NOT NULL REFERENCES voters(voter_id),
    candidate_id INTEGER NOT NULL REFERENCES candidates(candidate_id),
    election_id INTEGER NOT NULL REFERENCES elections(election_id),
    vote_round INTEGER NOT NULL DEFAULT 1,
    rejected INTEGER NOT NULL DEFAULT 0,
    poll_date TEXT
);

CREATE INDEX IF NOT EXISTS idx_votes_election ON votes(election_id, vote_round);
CREATE INDEX IF NOT EXISTS idx_votes_voter ON votes(voter_id);

-- Occupation classification
CREATE TABLE IF NOT EXISTS occupations_map (
    level_code TEXT PRIMARY KEY,
    level_num INTEGER NOT NULL,
    level_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS voters_occupations (
    voter_id INTEGER NOT NULL REFERENCES voters(voter_id),
    level1 TEXT,
    level2 TEXT
);

CREATE INDEX IF NOT EXISTS idx_voters_occupations_voter ON voters_occupations(voter_id);
`
