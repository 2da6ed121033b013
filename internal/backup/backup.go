// Package backup implements file export and import of the ledger: a
// pretty-printed UTF-8 JSON array of records. Import is where legacy field
// vocabularies from older builds are translated to the canonical shape.
package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"noteup/internal/core"
)

// Filename derives the backup file name for the given date, e.g.
// "noteup_backup_2024-01-31.json".
func Filename(on core.Date) string {
	return "noteup_backup_" + on.String() + ".json"
}

// Export writes the records as a pretty-printed JSON array.
func Export(w io.Writer, records []core.Record) error {
	if records == nil {
		records = []core.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// Issue describes one failed shape check on an imported payload. Index is
// the element's position in the array, or -1 for payload-level problems.
type Issue struct {
	Index  int    `json:"index"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

// ValidationError enumerates every shape check the imported payload
// failed, not just the first.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("invalid backup file")
	for i, issue := range e.Issues {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		if issue.Index >= 0 {
			fmt.Fprintf(&b, "record %d", issue.Index)
			if issue.Field != "" {
				fmt.Fprintf(&b, " field %q", issue.Field)
			}
			b.WriteString(": ")
		}
		b.WriteString(issue.Reason)
	}
	return b.String()
}

// kindLabels maps legacy display vocabularies onto the closed kind tag.
var kindLabels = map[string]core.Kind{
	"income":      core.Income,
	"expense":     core.Expense,
	"pemasukan":   core.Income,
	"pengeluaran": core.Expense,
}

// rawRecord accepts both the canonical field set and the aliases older
// builds used (type/kind, nominal/amount, message/note).
type rawRecord struct {
	ID       *int64   `json:"id"`
	Date     string   `json:"date"`
	Kind     string   `json:"kind"`
	Type     string   `json:"type"`
	Amount   *float64 `json:"amount"`
	Nominal  *float64 `json:"nominal"`
	Currency string   `json:"currency"`
	Note     string   `json:"note"`
	Message  string   `json:"message"`
}

// Import decodes and validates a backup payload. It fails with a
// *ValidationError when the payload is not a JSON array or any element is
// missing a required field; on failure no records are returned, so the
// caller's store stays untouched. Elements without an id get one derived
// past the largest id in the file.
func Import(r io.Reader) ([]core.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, &ValidationError{Issues: []Issue{
			{Index: -1, Reason: "payload is not a JSON array of records"},
		}}
	}

	var issues []Issue
	records := make([]core.Record, 0, len(elements))
	seen := make(map[int64]int, len(elements))
	var maxID int64

	for i, elem := range elements {
		var raw rawRecord
		if err := json.Unmarshal(elem, &raw); err != nil {
			issues = append(issues, Issue{Index: i, Reason: "not a record object"})
			continue
		}

		rec := core.Record{Currency: strings.TrimSpace(raw.Currency)}

		if raw.ID != nil {
			rec.ID = *raw.ID
			if prev, dup := seen[rec.ID]; dup {
				issues = append(issues, Issue{Index: i, Field: "id",
					Reason: fmt.Sprintf("duplicate of record %d", prev)})
			} else {
				seen[rec.ID] = i
			}
			if rec.ID > maxID {
				maxID = rec.ID
			}
		}

		kindValue := raw.Kind
		if kindValue == "" {
			kindValue = raw.Type
		}
		if kindValue == "" {
			issues = append(issues, Issue{Index: i, Field: "kind", Reason: "missing"})
		} else if kind, ok := kindLabels[strings.ToLower(strings.TrimSpace(kindValue))]; ok {
			rec.Kind = kind
		} else {
			issues = append(issues, Issue{Index: i, Field: "kind",
				Reason: fmt.Sprintf("unknown value %q", kindValue)})
		}

		amount := raw.Amount
		if amount == nil {
			amount = raw.Nominal
		}
		if amount == nil {
			issues = append(issues, Issue{Index: i, Field: "amount", Reason: "missing"})
		} else if units := roundHalfUp(*amount); units <= 0 {
			issues = append(issues, Issue{Index: i, Field: "amount", Reason: "must be positive"})
		} else {
			rec.Amount = units
		}

		if raw.Date == "" {
			issues = append(issues, Issue{Index: i, Field: "date", Reason: "missing"})
		} else if date, err := core.ParseDate(raw.Date); err != nil {
			issues = append(issues, Issue{Index: i, Field: "date", Reason: err.Error()})
		} else {
			rec.Date = date
		}

		rec.Note = raw.Note
		if rec.Note == "" {
			rec.Note = raw.Message
		}
		if len(rec.Note) > core.MaxNoteLength {
			issues = append(issues, Issue{Index: i, Field: "note", Reason: "too long"})
		}

		records = append(records, rec)
	}

	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	for i := range records {
		if records[i].ID == 0 {
			maxID++
			records[i].ID = maxID
		}
	}
	return records, nil
}

func roundHalfUp(v float64) int64 {
	if v <= 0 {
		return 0
	}
	return int64(v + 0.5)
}
