// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package archive

import (
	"context"
	"fmt"
	"strings"

	"github.com/danielhkuo/pollbook/db"
	"github.com/danielhkuo/pollbook/filters"
	"github.com/danielhkuo/pollbook/models"
	"github.com/danielhkuo/pollbook/query"
)

// emptyDetail is returned when a lookup finds nothing to report.
var emptyDetail = []any{}

// Voters returns the candidates of the election identified by
// constituency, year and month, keyed by candidate id, each with the
// occupation-classified voters who voted for them.
func (a *Archive) Voters(ctx context.Context, set filters.Set) (any, error) {
	var out any
	err := a.withConn(ctx, set, func(req *request) error {
		id, found, err := a.lookupElection(ctx, req.conn, req.filters)
		if err != nil || !found {
			out = emptyDetail
			return err
		}

		candidates, err := a.electionCandidates(ctx, req.conn, id)
		if err != nil {
			return err
		}
		if candidates.Len() == 0 {
			out = emptyDetail
			return nil
		}

		rows, err := a.occupationRows(ctx, req.conn, id)
		if err != nil {
			return err
		}
		for _, row := range rows {
			cid, _ := row.Get("candidate_id")
			entry, ok := candidates.Get(fmt.Sprint(cid))
			if !ok {
				continue
			}
			rec := entry.(*models.Record)
			voters, _ := rec.Get("voters")
			rec.Set("voters", append(voters.([]*models.Record), row))
		}
		out = candidates
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Occupations returns vote counts per level-2 occupation code for the
// election identified by constituency, year and month, split by whether
// the vote was rejected.
func (a *Archive) Occupations(ctx context.Context, set filters.Set) (any, error) {
	var out any
	err := a.withConn(ctx, set, func(req *request) error {
		id, found, err := a.lookupElection(ctx, req.conn, req.filters)
		if err != nil || !found {
			out = emptyDetail
			return err
		}

		w := query.NewWhere(a.ph)
		w.Raw("om.level_num = 2")
		w.Cmp("v.election_id", "=", id)
		stmt := w.Statement(`SELECT om.level_code, om.level_name, v.rejected, COUNT(*) AS n
FROM occupations_map om
JOIN votes v ON v.voter_id IN (SELECT vo.voter_id FROM voters_occupations vo WHERE vo.level2 = om.level_code)`)
		stmt.SQL += " GROUP BY om.level_code, om.level_name, v.rejected ORDER BY om.level_code, v.rejected"

		rows, err := db.Run(ctx, req.conn, stmt)
		if err != nil {
			return storeError("occupation statistics", err)
		}
		if len(rows) == 0 {
			out = emptyDetail
			return nil
		}

		stats := models.NewRecord(len(rows))
		for _, row := range rows {
			code, _ := row.Get("level_code")
			name, _ := row.Get("level_name")
			rejected, _ := row.Get("rejected")
			n, _ := row.Get("n")

			key := fmt.Sprint(code)
			entry, ok := stats.Get(key)
			if !ok {
				rec := models.NewRecord(2)
				rec.Set("level_name", name)
				rec.Set("counts", []*models.Record{})
				stats.Set(key, rec)
				entry = rec
			}
			count := models.NewRecord(2)
			count.Set("rejected", rejected)
			count.Set("n", asInt(n))

			rec := entry.(*models.Record)
			counts, _ := rec.Get("counts")
			rec.Set("counts", append(counts.([]*models.Record), count))
		}
		out = stats
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// lookupElection resolves a constituency/year/month triple to one election id.
func (a *Archive) lookupElection(ctx context.Context, q db.Querier, set filters.Set) (any, bool, error) {
	for _, key := range []string{"constituency", "year", "month"} {
		if !set.Has(key) || set.Get(key) == "" {
			return nil, false, fmt.Errorf("%w: %s", ErrMissingParam, key)
		}
	}

	w := query.NewWhere(a.ph)
	w.Cmp("LOWER(constituency)", "=", strings.ToLower(filters.Constituency(set.Get("constituency"))))
	w.Cmp("election_year", "=", filters.Int(set.Get("year")))
	w.Cmp("election_month", "=", filters.Month(set.Get("month")))
	stmt := w.Statement("SELECT election_id FROM elections")
	stmt.SQL += " ORDER BY election_id"

	rows, err := db.Run(ctx, q, stmt)
	if err != nil {
		return nil, false, storeError("look up election", err)
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	id, _ := rows[0].Get("election_id")
	return id, true, nil
}

// electionCandidates returns a record keyed by candidate id holding
// {candidate_id, candidate_name, voters} entries.
func (a *Archive) electionCandidates(ctx context.Context, q db.Querier, electionID any) (*models.Record, error) {
	w := query.NewWhere(a.ph)
	w.Cmp("ce.election_id", "=", electionID)
	stmt := w.Statement(`SELECT ce.candidate_id, ` + displayName + ` AS candidate_name
FROM candidates_elections ce
JOIN candidates c ON c.candidate_id = ce.candidate_id`)
	stmt.SQL += " ORDER BY ce.candidate_id"

	rows, err := db.Run(ctx, q, stmt)
	if err != nil {
		return nil, storeError("election candidates", err)
	}

	out := models.NewRecord(len(rows))
	for _, row := range rows {
		id, _ := row.Get("candidate_id")
		name, _ := row.Get("candidate_name")
		rec := models.NewRecord(3)
		rec.Set("candidate_id", id)
		rec.Set("candidate_name", name)
		rec.Set("voters", []*models.Record{})
		out.Set(fmt.Sprint(id), rec)
	}
	return out, nil
}

// occupationRows joins every vote of the election with the voter's
// occupation classification.
func (a *Archive) occupationRows(ctx context.Context, q db.Querier, electionID any) ([]*models.Record, error) {
	w := query.NewWhere(a.ph)
	w.Cmp("v.election_id", "=", electionID)
	stmt := w.Statement(`SELECT v.candidate_id, v.election_id, v.rejected, v.poll_date, vr.voter_id,
       vr.occupation_std, vr.guild, vo.level1, vo.level2, o.level_name
FROM votes v
JOIN voters vr ON vr.voter_id = v.voter_id
JOIN voters_occupations vo ON vo.voter_id = v.voter_id
JOIN occupations_map o ON o.level_code = vo.level2`)
	stmt.SQL += " ORDER BY v.candidate_id, vr.voter_id"

	rows, err := db.Run(ctx, q, stmt)
	if err != nil {
		return nil, storeError("occupation distribution", err)
	}
	return rows, nil
}

// occupationsByCandidate groups the occupation rows of an election by
// candidate id, for the search enrichment.
func (a *Archive) occupationsByCandidate(ctx context.Context, q db.Querier, electionID any) (any, error) {
	rows, err := a.occupationRows(ctx, q, electionID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return models.InformationNotAvailable, nil
	}

	out := models.NewRecord(4)
	for _, row := range rows {
		cid, _ := row.Get("candidate_id")
		key := fmt.Sprint(cid)
		existing, _ := out.Get(key)
		list, _ := existing.([]*models.Record)
		out.Set(key, append(list, row))
	}
	return out, nil
}
