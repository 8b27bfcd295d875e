// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the archive store and turns rows into ordered records.

Open accepts "sqlite" (modernc.org/sqlite, pure Go) or "postgres"
(lib/pq). Placeholder returns the matching bind marker style for the
query package.

CreateSchema creates the archive tables when missing. Production archives
are loaded elsewhere and treated as read-only.
*/
package db
