// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package query builds parameterized SQL for the election search.

Every predicate fragment is created together with its bound values by a
Where, so fragment order and argument order cannot drift apart:

	w := query.NewWhere(query.Dollar)
	w.Cmp("e.election_year", ">=", 1790)
	w.In("e.election_month", []any{"Jan", "Feb"})
	stmt := w.Statement("SELECT * FROM elections e")

Filters declares the search filters in the order their fragments are
emitted.
*/
package query
