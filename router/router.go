// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/pollbook/archive"
	"github.com/danielhkuo/pollbook/cliparse"
	"github.com/danielhkuo/pollbook/handlers"
	"github.com/danielhkuo/pollbook/middleware"
)

// NewRouter registers every route on a ServeMux and wraps it in CORS for
// cfg.AllowedOrigins.
func NewRouter(a *archive.Archive, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	electionsHandler := handlers.NewElectionsHandler(a)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Archive queries
	mux.HandleFunc("GET /elections", middleware.WithLogging(electionsHandler.Search))
	mux.HandleFunc("GET /elections/voters", middleware.WithLogging(electionsHandler.Voters))
	mux.HandleFunc("GET /elections/occupations", middleware.WithLogging(electionsHandler.Occupations))

	// Legacy script paths
	mux.HandleFunc("GET /getElections.php", middleware.WithLogging(electionsHandler.Search))
	mux.HandleFunc("GET /api.php", middleware.WithLogging(electionsHandler.Voters))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pollbook API v1"))
	})

	return middleware.CORS(cfg.AllowedOrigins, mux)
}
