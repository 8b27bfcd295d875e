// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package archive

import (
	"github.com/danielhkuo/pollbook/filters"
	"github.com/danielhkuo/pollbook/models"
)

// Summarize wraps matched elections with their count and year span. An
// empty result uses the sentinel strings in place of years and elections.
func Summarize(rows []*models.Record) models.SearchResponse {
	if len(rows) == 0 {
		return models.SearchResponse{
			NumResults:   0,
			EarliestYear: models.NotApplicable,
			LatestYear:   models.NotApplicable,
			Elections:    models.NoElectionsFound,
		}
	}

	earliest, latest := 0, 0
	for i, row := range rows {
		v, _ := row.Get("election_year")
		year := asInt(v)
		if i == 0 || year < earliest {
			earliest = year
		}
		if i == 0 || year > latest {
			latest = year
		}
	}

	return models.SearchResponse{
		NumResults:   len(rows),
		EarliestYear: earliest,
		LatestYear:   latest,
		Elections:    rows,
	}
}

func asInt(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case int32:
		return int(t)
	case float64:
		return int(t)
	case string:
		return filters.Int(t)
	case []byte:
		return filters.Int(string(t))
	case bool:
		if t {
			return 1
		}
	}
	return 0
}
