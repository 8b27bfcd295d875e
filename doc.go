// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the pollbook API server.

Pollbook serves a read-only archive of historical parliamentary elections:
constituencies, candidates, official results and the surviving poll books
that record how individual voters cast their votes, round by round.

# Starting the Server

	DATABASE_URL=archive.db go run main.go

Or against PostgreSQL:

	go run main.go -t postgres -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): archive connection string or SQLite path

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - ALLOWED_ORIGINS (-origins): comma separated CORS origins (default: *)
  - ENRICH_PARALLELISM (-parallel): concurrent per-election lookups (default: 4)
  - INIT_SCHEMA (-init-schema): create empty archive tables on start

A .env file in the working directory, or the one named by -env-file, is
loaded before the environment is read.

# Architecture

  - handlers: HTTP handlers for search and single-election detail
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, request logging, HTML-safe JSON
  - archive: search, enrichment and detail lookups
  - query: paired predicate and parameter construction
  - filters: query-string normalization
  - models: ordered records and response documents
  - db: drivers, row scanning and schema creation
  - cliparse: Configuration parsing
*/
package main
