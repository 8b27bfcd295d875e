// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package query

import (
	"strings"

	"github.com/danielhkuo/pollbook/filters"
	"github.com/danielhkuo/pollbook/models"
)

// Op is the predicate shape a filter contributes.
type Op int

const (
	OpEqual Op = iota
	OpAtLeast
	OpAtMost
	OpIn
)

// Input is everything the election search predicates are built from.
type Input struct {
	Filters filters.Set

	// Candidate is true when a candidate filter was resolved; the election
	// ids it matched are then merged into the election_id filter.
	Candidate          bool
	CandidateElections []string
}

// Filter describes one recognized search criterion.
type Filter struct {
	Name   string
	Column string
	Op     Op

	// Values parses the raw input into bound arguments. OpEqual, OpAtLeast
	// and OpAtMost use exactly one value.
	Values func(in Input) []any

	// Applies overrides the default "key is present" check.
	Applies func(in Input) bool
}

func (f Filter) applies(in Input) bool {
	if f.Applies != nil {
		return f.Applies(in)
	}
	return in.Filters.Has(f.Name)
}

// Filters lists the election search criteria in the order their predicates
// are emitted.
var Filters = []Filter{
	{
		Name:   "election_id",
		Column: "CAST(e.election_id AS TEXT)",
		Op:     OpIn,
		Values: electionIDs,
		Applies: func(in Input) bool {
			return in.Candidate || in.Filters.Has("election_id")
		},
	},
	{
		Name:    "has_data",
		Column:  "e.has_data",
		Op:      OpEqual,
		Values:  func(Input) []any { return []any{1} },
		Applies: func(in Input) bool { return in.Filters.Flag("has_data") },
	},
	{
		Name:   "year",
		Column: "e.election_year",
		Op:     OpEqual,
		Values: intValue("year"),
	},
	{
		Name:    "from_year",
		Column:  "e.election_year",
		Op:      OpAtLeast,
		Values:  intValue("from_year"),
		Applies: withoutYear("from_year"),
	},
	{
		Name:    "to_year",
		Column:  "e.election_year",
		Op:      OpAtMost,
		Values:  intValue("to_year"),
		Applies: withoutYear("to_year"),
	},
	{
		Name:   "general_election_id",
		Column: "CAST(e.general_election_id AS TEXT)",
		Op:     OpIn,
		Values: list("general_election_id", nil),
	},
	{
		Name:   "month",
		Column: "e.election_month",
		Op:     OpIn,
		Values: list("month", filters.Months),
	},
	{
		Name:   "constituency",
		Column: "LOWER(e.constituency)",
		Op:     OpIn,
		Values: constituencies,
	},
	{
		Name:   "countyboroughuniv",
		Column: "e.countyboroughuniv",
		Op:     OpIn,
		Values: list("countyboroughuniv", nil),
	},
	{
		Name:   "byelectiongeneral",
		Column: "e.by_election_general",
		Op:     OpIn,
		Values: list("byelectiongeneral", nil),
	},
	{
		Name:   "contested",
		Column: "CAST(e.contested AS TEXT)",
		Op:     OpIn,
		Values: list("contested", nil),
	},
}

const electionsBase = `SELECT e.*, c.lat, c.lng
FROM elections e
JOIN constituencies c ON c.constituency_id = e.constituency_id`

// Elections builds the search statement. The office restriction is always
// the first predicate.
func Elections(ph Placeholder, in Input) Statement {
	w := NewWhere(ph)
	w.Raw("e.office = '" + models.OfficeParliament + "'")
	for _, f := range Filters {
		if f.applies(in) {
			f.apply(w, in)
		}
	}
	return w.Statement(electionsBase)
}

func (f Filter) apply(w *Where, in Input) {
	vals := f.Values(in)
	switch f.Op {
	case OpEqual:
		w.Cmp(f.Column, "=", vals[0])
	case OpAtLeast:
		w.Cmp(f.Column, ">=", vals[0])
	case OpAtMost:
		w.Cmp(f.Column, "<=", vals[0])
	case OpIn:
		w.In(f.Column, vals)
	}
}

// electionIDs unions resolved candidate elections with explicit ids,
// keeping first occurrences.
func electionIDs(in Input) []any {
	var ids []string
	if in.Candidate {
		ids = append(ids, in.CandidateElections...)
	}
	if in.Filters.Has("election_id") {
		ids = append(ids, in.Filters.List("election_id")...)
	}
	seen := make(map[string]bool, len(ids))
	out := make([]any, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func intValue(key string) func(Input) []any {
	return func(in Input) []any {
		n, _ := in.Filters.Int(key)
		return []any{n}
	}
}

func withoutYear(key string) func(Input) bool {
	return func(in Input) bool {
		return !in.Filters.Has("year") && in.Filters.Has(key)
	}
}

// list splits the multi-value field key with split, or on ';' when split
// is nil.
func list(key string, split func(string) []string) func(Input) []any {
	if split == nil {
		split = filters.Split
	}
	return func(in Input) []any {
		parts := split(in.Filters.Get(key))
		out := make([]any, len(parts))
		for i, p := range parts {
			out[i] = p
		}
		return out
	}
}

// constituencies returns the normalized names in lower case, to match
// against LOWER(e.constituency).
func constituencies(in Input) []any {
	parts := filters.Constituencies(in.Filters.Get("constituency"))
	out := make([]any, len(parts))
	for i, p := range parts {
		out[i] = strings.ToLower(p)
	}
	return out
}
