// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package filters

import "strings"

var months = map[string]string{
	"1": "Jan", "jan": "Jan", "january": "Jan",
	"2": "Feb", "feb": "Feb", "february": "Feb",
	"3": "Mar", "mar": "Mar", "march": "Mar",
	"4": "Apr", "apr": "Apr", "april": "Apr",
	"5": "May", "may": "May",
	"6": "June", "jun": "June", "june": "June",
	"7": "July", "jul": "July", "july": "July",
	"8": "Aug", "aug": "Aug", "august": "Aug",
	"9": "Sept", "sep": "Sept", "sept": "Sept", "september": "Sept",
	"10": "Oct", "oct": "Oct", "october": "Oct",
	"11": "Nov", "nov": "Nov", "november": "Nov",
	"12": "Dec", "dec": "Dec", "december": "Dec",
}

// Month maps a month name, abbreviation or number to the code stored in
// elections.election_month. June, July and September keep their
// four-letter codes. Unrecognized tokens are returned unchanged.
func Month(token string) string {
	if m, ok := months[strings.ToLower(token)]; ok {
		return m
	}
	return token
}

// Constituency maps historical spellings of ambiguous towns to their
// canonical constituency name. Other values are returned unchanged.
func Constituency(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "newcastle"):
		if strings.Contains(lower, "lyme") {
			return "Newcastle-under-Lyme"
		}
		return "Newcastle-upon-Tyne"
	case strings.Contains(lower, "berwick"):
		return "Berwick-upon-Tweed"
	case strings.Contains(lower, "kingston"):
		return "Kingston-upon-Hull"
	}
	return name
}

// Months splits and normalizes a multi-value month field.
func Months(v string) []string {
	parts := Split(v)
	for i, p := range parts {
		parts[i] = Month(p)
	}
	return parts
}

// Constituencies splits and normalizes a multi-value constituency field.
func Constituencies(v string) []string {
	parts := Split(v)
	for i, p := range parts {
		parts[i] = Constituency(p)
	}
	return parts
}
