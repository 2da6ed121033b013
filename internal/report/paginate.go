package report

import (
	"slices"

	"noteup/internal/core"
)

// Page is one stable slice of the display-ordered record set.
type Page struct {
	Items        []core.Record `json:"items"`
	PageIndex    int           `json:"page"`
	TotalPages   int           `json:"totalPages"`
	TotalRecords int           `json:"totalRecords"`
}

// SortForDisplay returns a copy of records in display order: most recent
// date first, ties broken by descending id. Storage order is never touched.
func SortForDisplay(records []core.Record) []core.Record {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b core.Record) int {
		switch {
		case a.Date.After(b.Date):
			return -1
		case b.Date.After(a.Date):
			return 1
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		default:
			return 0
		}
	})
	return sorted
}

// Paginate slices the display-ordered record set into the requested page.
// pageIndex is clamped into [1, totalPages]; out-of-range requests resolve
// to the nearest valid page rather than erroring. pageSize below 1 is
// treated as 1.
func Paginate(records []core.Record, pageSize, pageIndex int) Page {
	if pageSize < 1 {
		pageSize = 1
	}
	sorted := SortForDisplay(records)

	totalPages := (len(sorted) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if pageIndex < 1 {
		pageIndex = 1
	}
	if pageIndex > totalPages {
		pageIndex = totalPages
	}

	start := (pageIndex - 1) * pageSize
	end := min(start+pageSize, len(sorted))

	return Page{
		Items:        sorted[start:end],
		PageIndex:    pageIndex,
		TotalPages:   totalPages,
		TotalRecords: len(sorted),
	}
}
