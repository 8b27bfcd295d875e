// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the pollbook API.

ElectionsHandler wraps an archive.Archive:

	GET /elections             → Search
	GET /elections/voters      → Voters
	GET /elections/occupations → Occupations

Filters are read from the raw query string so that repeated keys resolve
to the last occurrence. Missing constituency, year or month on the detail
endpoints is a 400; any store failure is logged and returned as a 500.
*/
package handlers
