// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type (sqlite or postgres)
	-origins      Comma separated CORS origins
	-parallel     Concurrent per-election enrichments
	-init-schema  Create archive tables if missing
	-env-file     Load environment from file

# Environment Variables

	PORT, DATABASE_URL, DATABASE_TYPE, ALLOWED_ORIGINS,
	ENRICH_PARALLELISM, INIT_SCHEMA

CLI flags take precedence over environment variables, which take
precedence over the env file.
*/
package cliparse
