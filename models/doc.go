// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package models defines the ordered records and response documents
// returned by the archive, along with the sentinel strings that stand in
// for missing data.
package models
