// Package ledger holds the in-memory record store, the single source of
// truth for the session. Iteration order is insertion order; any display
// ordering is derived elsewhere and never mutates storage order.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"noteup/internal/core"
)

// Store is an ordered collection of transaction records guarded by a
// single-writer lock.
type Store struct {
	mu      sync.Mutex
	records []core.Record
	lastID  int64
}

// Patch carries the fields an edit may change. Nil fields are left
// untouched; ID is never patchable.
type Patch struct {
	Date     *core.Date
	Kind     *core.Kind
	Amount   *int64
	Currency *string
	Note     *string
}

func NewStore() *Store {
	return &Store{}
}

// Create validates the draft, assigns a fresh id and appends. Ids are
// derived from the creation timestamp in milliseconds and bumped past the
// last issued id, so two creates in the same tick cannot collide.
func (s *Store) Create(draft core.Record) (core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft.ID = s.nextID()
	if err := draft.Validate(); err != nil {
		return core.Record{}, err
	}
	s.records = append(s.records, draft)
	return draft, nil
}

func (s *Store) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// Update merges the patch into the record with the given id, preserving id
// and untouched fields. Returns core.ErrNotFound for a stale id.
func (s *Store) Update(id int64, p Patch) (core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID != id {
			continue
		}
		merged := s.records[i]
		if p.Date != nil {
			merged.Date = *p.Date
		}
		if p.Kind != nil {
			merged.Kind = *p.Kind
		}
		if p.Amount != nil {
			merged.Amount = *p.Amount
		}
		if p.Currency != nil {
			merged.Currency = *p.Currency
		}
		if p.Note != nil {
			merged.Note = *p.Note
		}
		if err := merged.Validate(); err != nil {
			return core.Record{}, err
		}
		s.records[i] = merged
		return merged, nil
	}
	return core.Record{}, core.ErrNotFound
}

// Delete removes the record with the given id. Deleting a nonexistent id
// is a no-op returning false, not an error.
func (s *Store) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true
		}
	}
	return false
}

// List returns a copy of the records in insertion order.
func (s *Store) List() []core.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *Store) FindByID(id int64) (core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return core.Record{}, core.ErrNotFound
}

// Replace swaps the entire store contents, as on hydration or bulk import.
// Unlike looped Create calls it keeps the incoming ids and skips
// per-record validation; the caller has already validated the shape. The
// id uniqueness invariant is still enforced.
func (s *Store) Replace(records []core.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[int64]struct{}, len(records))
	var maxID int64
	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("duplicate record id %d", r.ID)
		}
		seen[r.ID] = struct{}{}
		if r.ID > maxID {
			maxID = r.ID
		}
	}

	s.records = make([]core.Record, len(records))
	copy(s.records, records)
	if maxID > s.lastID {
		s.lastID = maxID
	}
	return nil
}
