// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package query

import (
	"strconv"
	"strings"
)

// Placeholder renders the bind marker for the n-th argument (1-based).
type Placeholder func(n int) string

// Dollar renders PostgreSQL style markers ($1, $2, ...).
func Dollar(n int) string {
	return "$" + strconv.Itoa(n)
}

// Question renders SQLite style markers.
func Question(int) string {
	return "?"
}

// Statement is query text plus its bound arguments in marker order.
type Statement struct {
	SQL  string
	Args []any
}

// Where builds a conjunction of predicate fragments. Each fragment and the
// arguments it references are appended in the same call, so marker n always
// refers to Args()[n-1].
type Where struct {
	ph    Placeholder
	frags []string
	args  []any
}

// NewWhere returns an empty Where. A nil ph uses Question markers.
func NewWhere(ph Placeholder) *Where {
	if ph == nil {
		ph = Question
	}
	return &Where{ph: ph}
}

// Bind appends v to the argument list and returns its marker.
func (w *Where) Bind(v any) string {
	w.args = append(w.args, v)
	return w.ph(len(w.args))
}

// Raw appends a fragment that has no arguments.
func (w *Where) Raw(frag string) {
	w.frags = append(w.frags, frag)
}

// Cmp appends "col op ?".
func (w *Where) Cmp(col, op string, v any) {
	w.frags = append(w.frags, col+" "+op+" "+w.Bind(v))
}

// In appends "col IN (?, ...)". An empty list can match nothing.
func (w *Where) In(col string, vals []any) {
	if len(vals) == 0 {
		w.frags = append(w.frags, "1 = 0")
		return
	}
	markers := make([]string, len(vals))
	for i, v := range vals {
		markers[i] = w.Bind(v)
	}
	w.frags = append(w.frags, col+" IN ("+strings.Join(markers, ", ")+")")
}

// Contains appends a parenthesized OR of case-insensitive substring matches
// of expr against each needle. LIKE wildcards in needles match literally.
func (w *Where) Contains(expr string, needles []string) {
	if len(needles) == 0 {
		w.frags = append(w.frags, "1 = 0")
		return
	}
	ors := make([]string, len(needles))
	for i, n := range needles {
		pattern := "%" + escapeLike(strings.ToLower(n)) + "%"
		ors[i] = "LOWER(" + expr + ") LIKE " + w.Bind(pattern) + ` ESCAPE '\'`
	}
	w.frags = append(w.frags, "("+strings.Join(ors, " OR ")+")")
}

// Args returns the bound arguments in marker order.
func (w *Where) Args() []any {
	return w.args
}

// SQL joins the fragments with AND. It is empty when nothing was added.
func (w *Where) SQL() string {
	return strings.Join(w.frags, " AND ")
}

// Statement appends " WHERE ..." to base when there are fragments.
func (w *Where) Statement(base string) Statement {
	sql := base
	if len(w.frags) > 0 {
		sql += " WHERE " + w.SQL()
	}
	return Statement{SQL: sql, Args: w.args}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
