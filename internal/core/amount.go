// Package core holds the ledger's domain types: records, dates, kinds and
// amount parsing. Everything here is pure and storage-agnostic.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount converts a decimal string into minor currency units with
// half-up rounding on the third decimal place. Both dot and comma decimal
// separators are accepted. Only strictly positive values are valid.
//
//	ParseAmount("12.34")  -> 1234
//	ParseAmount("12,345") -> 1235 (rounds up)
//	ParseAmount("50000")  -> 5000000
func ParseAmount(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	if strings.Contains(fracPart, ".") {
		return 0, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxBeforeScale = (1<<63 - 1) / 100
	if iv > maxBeforeScale {
		return 0, ErrInvalidAmount
	}

	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
	}
	if len(fracPart) > 1 {
		frac += int64(fracPart[1] - '0')
	}
	if len(fracPart) > 2 && fracPart[2] >= '5' {
		frac++
	}

	units := iv*100 + frac
	if units <= 0 {
		return 0, ErrInvalidAmount
	}
	return units, nil
}
