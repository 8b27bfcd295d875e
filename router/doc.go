// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the pollbook API.

	mux := router.NewRouter(archive, cfg)

# Endpoints

Health:

	GET /health

Archive:

	GET /elections             - Search elections
	GET /elections/voters      - Candidates and classified voters of one election
	GET /elections/occupations - Vote counts per occupation class

Legacy script paths, kept for existing map clients:

	GET /getElections.php - same as /elections
	GET /api.php          - same as /elections/voters

The mux is wrapped in CORS; archive routes are wrapped in request logging.
*/
package router
