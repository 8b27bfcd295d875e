// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package archive

import (
	"context"
	"fmt"

	"github.com/danielhkuo/pollbook/db"
	"github.com/danielhkuo/pollbook/filters"
	"github.com/danielhkuo/pollbook/query"
)

// displayName is a participation's ballot name, falling back to the
// candidate's own name.
const displayName = "COALESCE(ce.running_as, c.candidate_name)"

// candidateNames returns the non-empty name fragments of the candidate filter.
func candidateNames(set filters.Set) []string {
	var names []string
	for _, n := range set.List("candidate") {
		if n != "" {
			names = append(names, n)
		}
	}
	return names
}

// resolveCandidates returns the distinct ids of elections with at least one
// participation whose display name contains any of names.
func (a *Archive) resolveCandidates(ctx context.Context, q db.Querier, names []string) ([]string, error) {
	w := query.NewWhere(a.ph)
	w.Contains(displayName, names)
	stmt := w.Statement(`SELECT DISTINCT ce.election_id
FROM candidates_elections ce
JOIN candidates c ON c.candidate_id = ce.candidate_id`)
	stmt.SQL += " ORDER BY ce.election_id"

	rows, err := db.Run(ctx, q, stmt)
	if err != nil {
		return nil, storeError("resolve candidates", err)
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		id, _ := r.Get("election_id")
		ids = append(ids, fmt.Sprint(id))
	}
	return ids, nil
}
