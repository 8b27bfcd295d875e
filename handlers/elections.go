// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pollbook/archive"
	"github.com/danielhkuo/pollbook/filters"
	"github.com/danielhkuo/pollbook/middleware"
)

// ElectionsHandler serves the archive's search and detail endpoints.
type ElectionsHandler struct {
	archive *archive.Archive
}

// NewElectionsHandler returns a handler backed by a.
func NewElectionsHandler(a *archive.Archive) *ElectionsHandler {
	return &ElectionsHandler{archive: a}
}

// Search handles GET /elections
// Returns matching parliamentary elections with optional results, poll
// book, voter count, tallies and occupations attached.
func (h *ElectionsHandler) Search(w http.ResponseWriter, r *http.Request) {
	set := filters.Parse(r.URL.RawQuery)

	resp, err := h.archive.Search(r.Context(), set)
	if err != nil {
		h.fail(w, "search elections", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Voters handles GET /elections/voters
// Requires constituency, year and month. Returns the election's candidates
// keyed by id with the occupation-classified votes cast for each.
func (h *ElectionsHandler) Voters(w http.ResponseWriter, r *http.Request) {
	h.single(w, r, "election voters", h.archive.Voters)
}

// Occupations handles GET /elections/occupations
// Requires constituency, year and month. Returns vote counts per
// occupation class.
func (h *ElectionsHandler) Occupations(w http.ResponseWriter, r *http.Request) {
	h.single(w, r, "occupation statistics", h.archive.Occupations)
}

func (h *ElectionsHandler) single(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	fn func(context.Context, filters.Set) (any, error),
) {
	set := filters.Parse(r.URL.RawQuery)

	out, err := fn(r.Context(), set)
	if err != nil {
		h.fail(w, op, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, out)
}

func (h *ElectionsHandler) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, archive.ErrMissingParam):
		middleware.ErrorResponse(w, http.StatusBadRequest, "constituency, year and month are required")
	case errors.Is(err, archive.ErrStore):
		slog.Error("failed to query archive", "op", op, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	default:
		slog.Error("request failed", "op", op, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}
