// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package archive

import (
	"context"
	"fmt"
	"strings"

	"github.com/danielhkuo/pollbook/db"
	"github.com/danielhkuo/pollbook/models"
	"github.com/danielhkuo/pollbook/query"
)

// results lists every participation in the election, seated candidates
// first, then by name.
func (a *Archive) results(ctx context.Context, q db.Querier, electionID any) (any, error) {
	w := query.NewWhere(a.ph)
	w.Cmp("ce.election_id", "=", electionID)
	stmt := w.Statement(`SELECT ce.election_id,
       ` + displayName + ` AS candidate,
       ce.returned,
       COALESCE(CAST(ce.overturned_by AS TEXT), '` + models.NoSuccessor + `') AS overturned_by,
       ce.seated
FROM candidates_elections ce
JOIN candidates c ON c.candidate_id = ce.candidate_id`)
	stmt.SQL += " ORDER BY ce.seated DESC, candidate"

	rows, err := db.Run(ctx, q, stmt)
	if err != nil {
		return nil, storeError("election results", err)
	}
	if len(rows) == 0 {
		return models.InformationNotAvailable, nil
	}
	return rows, nil
}

// tallies counts votes per candidate, highest first.
func (a *Archive) tallies(ctx context.Context, q db.Querier, electionID any) (any, error) {
	w := query.NewWhere(a.ph)
	w.Cmp("v.election_id", "=", electionID)
	stmt := w.Statement(`SELECT COUNT(*) AS votes, ` + displayName + ` AS candidate
FROM votes v
JOIN candidates c ON c.candidate_id = v.candidate_id
JOIN candidates_elections ce ON ce.candidate_id = v.candidate_id AND ce.election_id = v.election_id`)
	stmt.SQL += " GROUP BY v.candidate_id, ce.running_as, c.candidate_name ORDER BY votes DESC, candidate"

	rows, err := db.Run(ctx, q, stmt)
	if err != nil {
		return nil, storeError("vote tallies", err)
	}
	if len(rows) == 0 {
		return models.InformationNotAvailable, nil
	}
	return rows, nil
}

// voterCount counts distinct voters with any vote in the election.
func (a *Archive) voterCount(ctx context.Context, q db.Querier, electionID any) (int, error) {
	n, err := a.count(ctx, q, "SELECT COUNT(DISTINCT voter_id) AS n FROM votes", electionID)
	if err != nil {
		return 0, storeError("voter count", err)
	}
	return n, nil
}

func (a *Archive) count(ctx context.Context, q db.Querier, base string, electionID any) (int, error) {
	w := query.NewWhere(a.ph)
	w.Cmp("election_id", "=", electionID)
	rows, err := db.Run(ctx, q, w.Statement(base))
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return asInt(rows[0].Fields()[0].Value), nil
}

// ballots rebuilds the poll book of an election: one block per voting
// round, each listing the non-rejected voters with the candidates they
// chose in that round.
func (a *Archive) ballots(ctx context.Context, q db.Querier, electionID any) (any, error) {
	rounds, err := a.count(ctx, q, "SELECT COUNT(DISTINCT vote_round) AS n FROM votes", electionID)
	if err != nil {
		return nil, storeError("count voting rounds", err)
	}
	if rounds == 0 {
		return models.InformationNotAvailable, nil
	}

	voters, err := a.pollVoters(ctx, q, electionID)
	if err != nil {
		return nil, err
	}
	choices, err := a.roundChoices(ctx, q, electionID)
	if err != nil {
		return nil, err
	}

	out := models.NewRecord(rounds)
	for round := 1; round <= rounds; round++ {
		picked := choices[round]
		entries := make([]*models.Record, 0, len(voters))
		for _, v := range voters {
			rec := models.NewRecord(5)
			rec.Set("surname", v.surname)
			rec.Set("forename", v.forename)
			rec.Set("occupation", orNotAvailable(v.occupation))
			rec.Set("address", orNotAvailable(v.address))
			if names := picked[v.id]; len(names) > 0 {
				rec.Set("voted for", strings.Join(names, ", "))
			} else {
				rec.Set("voted for", nil)
			}
			entries = append(entries, rec)
		}
		out.Set(fmt.Sprintf("Voting round %d of %d", round, rounds), entries)
	}
	return out, nil
}

type pollVoter struct {
	id         string
	surname    any
	forename   any
	occupation any
	address    any
}

// pollVoters lists voters with at least one accepted vote in the election,
// ordered by surname then forename.
func (a *Archive) pollVoters(ctx context.Context, q db.Querier, electionID any) ([]pollVoter, error) {
	w := query.NewWhere(a.ph)
	w.Raw("vr.voter_id IN (SELECT voter_id FROM votes WHERE rejected = 0 AND election_id = " + w.Bind(electionID) + ")")
	stmt := w.Statement(`SELECT vr.voter_id, vr.surname, vr.forename, vr.occupation, vr.location_sanitized
FROM voters vr`)
	stmt.SQL += " ORDER BY vr.surname, vr.forename"

	rows, err := db.Run(ctx, q, stmt)
	if err != nil {
		return nil, storeError("poll book voters", err)
	}

	voters := make([]pollVoter, len(rows))
	for i, r := range rows {
		id, _ := r.Get("voter_id")
		surname, _ := r.Get("surname")
		forename, _ := r.Get("forename")
		occupation, _ := r.Get("occupation")
		address, _ := r.Get("location_sanitized")
		voters[i] = pollVoter{
			id:         fmt.Sprint(id),
			surname:    surname,
			forename:   forename,
			occupation: occupation,
			address:    address,
		}
	}
	return voters, nil
}

// roundChoices maps round -> voter id -> display names of the candidates
// that voter's records name in that round.
func (a *Archive) roundChoices(ctx context.Context, q db.Querier, electionID any) (map[int]map[string][]string, error) {
	w := query.NewWhere(a.ph)
	w.Cmp("v.election_id", "=", electionID)
	stmt := w.Statement(`SELECT DISTINCT v.vote_round, v.voter_id, v.candidate_id, ` + displayName + ` AS candidate
FROM votes v
JOIN candidates c ON c.candidate_id = v.candidate_id
JOIN candidates_elections ce ON ce.candidate_id = v.candidate_id AND ce.election_id = v.election_id`)
	stmt.SQL += " ORDER BY v.vote_round, v.voter_id, v.candidate_id"

	rows, err := db.Run(ctx, q, stmt)
	if err != nil {
		return nil, storeError("poll book choices", err)
	}

	choices := map[int]map[string][]string{}
	for _, r := range rows {
		roundValue, _ := r.Get("vote_round")
		voterID, _ := r.Get("voter_id")
		candidate, _ := r.Get("candidate")

		round := asInt(roundValue)
		if choices[round] == nil {
			choices[round] = map[string][]string{}
		}
		key := fmt.Sprint(voterID)
		choices[round][key] = append(choices[round][key], fmt.Sprint(candidate))
	}
	return choices, nil
}

func orNotAvailable(v any) any {
	switch t := v.(type) {
	case nil:
		return models.NotAvailable
	case string:
		if t == "" {
			return models.NotAvailable
		}
	}
	return v
}
