// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Sentinel values that stand in for missing data in responses.
// Consumers match on these literals, so they are part of the wire format.
const (
	NotApplicable           = "not applicable"
	NoElectionsFound        = "no elections found for criteria provided"
	NotAvailable            = "not available"
	InformationNotAvailable = "information not available"
	NoSuccessor             = "n/a"
)

// Office restricts every search to parliamentary elections.
const OfficeParliament = "parliament"

// SearchResponse is the document returned by the multi-election search.
// EarliestYear and LatestYear hold an int or NotApplicable; Elections holds
// []*Record or NoElectionsFound.
type SearchResponse struct {
	NumResults   int `json:"num_results"`
	EarliestYear any `json:"earliest_year"`
	LatestYear   any `json:"latest_year"`
	Elections    any `json:"elections"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
