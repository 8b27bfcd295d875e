// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package archive answers read-only queries over the elections archive.

Search resolves any candidate-name filter to election ids, runs the
election query and attaches the requested sub-resources to each match:

	include_results      official results, seated first
	include_votes        poll book, one block per voting round
	include_voter_count  distinct voters
	include_tallies      votes per candidate
	include_occupations  classified votes per candidate

A candidate filter always attaches results. Empty sub-resources read
"information not available"; an empty search reads "not applicable" and
"no elections found for criteria provided".

Voters and Occupations resolve a single election from constituency, year
and month. Every call runs its lookups on one dedicated connection. With
parallelism above 1, Search releases it before enriching elections
concurrently on the pool.
*/
package archive
