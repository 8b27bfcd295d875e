// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	mux.HandleFunc("GET /elections", middleware.WithLogging(handler))

Every request gets an X-Request-ID (the caller's, or a new UUID) which is
echoed in the response and attached to the start and completion log lines.

# CORS

	handler := middleware.CORS(cfg.AllowedOrigins, mux)

Only GET and OPTIONS are allowed.

# JSON

JSONResponse encodes with EncodeJSON, which escapes <, > and & and writes
quotes inside strings as \u0022. Text that is not valid UTF-8 is re-read as
ISO-8859-1 before a single retry.
*/
package middleware
