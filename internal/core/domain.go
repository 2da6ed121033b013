package core

import (
	"errors"
	"strings"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// MaxNoteLength bounds the free-text note attached to a record.
const MaxNoteLength = 200

type (
	// Kind discriminates the two sides of the ledger. It is closed: there
	// is no third state.
	Kind string

	// Record is a single income or expense entry. Amount is expressed in
	// minor currency units and is always strictly positive; the sign is
	// carried by Kind. Currency is a tag only, never converted.
	Record struct {
		ID       int64  `json:"id"`
		Date     Date   `json:"date"`
		Kind     Kind   `json:"kind"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency,omitempty"`
		Note     string `json:"note,omitempty"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidKind   = errors.New("invalid kind")
	ErrMissingDate   = errors.New("missing date")
	ErrNoteTooLong   = errors.New("note too long")
	ErrNotFound      = errors.New("record not found")
)

// Valid reports whether k is one of the two ledger kinds.
func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

// ParseKind parses a canonical kind value. Legacy display labels are
// translated at the import boundary, not here.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", ErrInvalidKind
	}
	return k, nil
}

func (r Record) Validate() error {
	if r.Date.IsZero() {
		return ErrMissingDate
	}
	if !r.Kind.Valid() {
		return ErrInvalidKind
	}
	if r.Amount <= 0 {
		return ErrInvalidAmount
	}
	if len(r.Note) > MaxNoteLength {
		return ErrNoteTooLong
	}
	return nil
}
