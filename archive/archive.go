// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/pollbook/db"
	"github.com/danielhkuo/pollbook/filters"
	"github.com/danielhkuo/pollbook/models"
	"github.com/danielhkuo/pollbook/query"
)

var (
	// ErrStore wraps every failure reported by the database.
	ErrStore = errors.New("store failure")

	// ErrMissingParam is returned when a single-election lookup lacks one of
	// constituency, year or month.
	ErrMissingParam = errors.New("missing required parameter")
)

// Archive answers read-only queries over the elections archive.
type Archive struct {
	db          *sql.DB
	ph          query.Placeholder
	parallelism int
}

// New creates an Archive. With parallelism above 1, per-election
// enrichments run concurrently on pooled connections.
func New(conn *sql.DB, ph query.Placeholder, parallelism int) *Archive {
	if parallelism < 1 {
		parallelism = 1
	}
	return &Archive{db: conn, ph: ph, parallelism: parallelism}
}

// request carries the per-request store connection and normalized filters.
type request struct {
	conn    db.Querier
	filters filters.Set
}

// Includes selects the optional attachments for each matched election.
type Includes struct {
	Results     bool
	Votes       bool
	VoterCount  bool
	Tallies     bool
	Occupations bool
}

func (i Includes) any() bool {
	return i.Results || i.Votes || i.VoterCount || i.Tallies || i.Occupations
}

func includesFrom(set filters.Set) Includes {
	return Includes{
		Results:     set.Flag("include_results"),
		Votes:       set.Flag("include_votes"),
		VoterCount:  set.Flag("include_voter_count"),
		Tallies:     set.Flag("include_tallies"),
		Occupations: set.Flag("include_occupations"),
	}
}

// withConn acquires a dedicated connection for the duration of fn and
// always releases it.
func (a *Archive) withConn(ctx context.Context, set filters.Set, fn func(*request) error) error {
	conn, err := a.db.Conn(ctx)
	if err != nil {
		return storeError("acquire connection", err)
	}
	defer conn.Close()

	return fn(&request{conn: conn, filters: set})
}

// Search runs the multi-election search and returns the summary document.
func (a *Archive) Search(ctx context.Context, set filters.Set) (models.SearchResponse, error) {
	var (
		rows []*models.Record
		inc  Includes
	)
	err := a.withConn(ctx, set, func(req *request) error {
		in := query.Input{Filters: req.filters}

		if names := candidateNames(req.filters); len(names) > 0 {
			ids, err := a.resolveCandidates(ctx, req.conn, names)
			if err != nil {
				return err
			}
			in.Candidate = true
			in.CandidateElections = ids
			req.filters = req.filters.With("include_results", "1")
			in.Filters = req.filters
		}

		stmt := query.Elections(a.ph, in)
		var err error
		rows, err = db.Run(ctx, req.conn, stmt)
		if err != nil {
			return storeError("search elections", err)
		}
		slog.Debug("elections matched", "count", len(rows), "predicates", stmt.SQL)

		inc = includesFrom(req.filters)
		if a.parallelism == 1 {
			return a.enrichEach(ctx, req.conn, rows, inc)
		}
		return nil
	})
	if err != nil {
		return models.SearchResponse{}, err
	}

	// The request connection is back in the pool before the fan-out starts.
	if a.parallelism > 1 {
		if err := a.enrichParallel(ctx, rows, inc); err != nil {
			return models.SearchResponse{}, err
		}
	}
	return Summarize(rows), nil
}

// enrichEach attaches the requested sub-resources to every election in
// turn on one connection.
func (a *Archive) enrichEach(ctx context.Context, conn db.Querier, rows []*models.Record, inc Includes) error {
	if !inc.any() {
		return nil
	}
	for _, row := range rows {
		if err := a.enrichElection(ctx, conn, row, inc); err != nil {
			return err
		}
	}
	return nil
}

// enrichParallel enriches up to parallelism elections at once on pooled
// connections. Rows are updated in place, so their order is never affected.
func (a *Archive) enrichParallel(ctx context.Context, rows []*models.Record, inc Includes) error {
	if !inc.any() || len(rows) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.parallelism)
	for _, row := range rows {
		row := row
		g.Go(func() error {
			return a.enrichElection(gctx, a.db, row, inc)
		})
	}
	return g.Wait()
}

func (a *Archive) enrichElection(ctx context.Context, q db.Querier, row *models.Record, inc Includes) error {
	id, _ := row.Get("election_id")

	if inc.Results {
		results, err := a.results(ctx, q, id)
		if err != nil {
			return err
		}
		row.Set("results", results)
	}
	if inc.Votes {
		votes, err := a.ballots(ctx, q, id)
		if err != nil {
			return err
		}
		row.Set("votes", votes)
	}
	if inc.VoterCount {
		n, err := a.voterCount(ctx, q, id)
		if err != nil {
			return err
		}
		row.Set("num_voters", n)
	}
	if inc.Tallies {
		tallies, err := a.tallies(ctx, q, id)
		if err != nil {
			return err
		}
		row.Set("tallies", tallies)
	}
	if inc.Occupations {
		occupations, err := a.occupationsByCandidate(ctx, q, id)
		if err != nil {
			return err
		}
		row.Set("occupations", occupations)
	}
	return nil
}

func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}
