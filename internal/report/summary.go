// Package report derives read-only views from a record set: aggregate
// totals, stable page slices and day-bucketed chart series. Every function
// here is pure; views are recomputed from scratch on each render.
package report

import "noteup/internal/core"

// Summary holds aggregate totals in minor currency units. Sums are raw
// numeric sums across whatever currency tags are present; no conversion is
// ever applied.
type Summary struct {
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
	Balance int64 `json:"balance"`
}

// Summarize computes the aggregate totals over records. Empty input yields
// the zero Summary.
func Summarize(records []core.Record) Summary {
	var s Summary
	for _, r := range records {
		switch r.Kind {
		case core.Income:
			s.Income += r.Amount
		case core.Expense:
			s.Expense += r.Amount
		}
	}
	s.Balance = s.Income - s.Expense
	return s
}
