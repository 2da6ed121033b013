package ledger

import (
	"errors"
	"testing"

	"noteup/internal/core"
)

func draft() core.Record {
	return core.Record{
		Date:   core.NewDate(2024, 1, 1),
		Kind:   core.Income,
		Amount: 50000,
		Note:   "salary",
	}
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	s := NewStore()
	seen := map[int64]bool{}
	var last int64
	for i := 0; i < 100; i++ {
		rec, err := s.Create(draft())
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if seen[rec.ID] {
			t.Fatalf("duplicate id %d", rec.ID)
		}
		if rec.ID <= last {
			t.Fatalf("id %d not monotonically increasing after %d", rec.ID, last)
		}
		seen[rec.ID] = true
		last = rec.ID
	}
	if s.Len() != 100 {
		t.Fatalf("len = %d, want 100", s.Len())
	}
}

func TestCreateRejectsInvalidDraft(t *testing.T) {
	s := NewStore()
	bad := draft()
	bad.Amount = 0
	if _, err := s.Create(bad); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("got %v, want ErrInvalidAmount", err)
	}
	if s.Len() != 0 {
		t.Fatal("invalid draft must not be appended")
	}
}

func TestUpdateMergesPatch(t *testing.T) {
	s := NewStore()
	rec, _ := s.Create(draft())

	amount := int64(75000)
	note := "bonus"
	got, err := s.Update(rec.ID, Patch{Amount: &amount, Note: &note})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.ID != rec.ID {
		t.Errorf("id changed: %d -> %d", rec.ID, got.ID)
	}
	if got.Amount != 75000 || got.Note != "bonus" {
		t.Errorf("patch not applied: %+v", got)
	}
	if got.Kind != rec.Kind || got.Date != rec.Date {
		t.Errorf("untouched fields changed: %+v", got)
	}
}

func TestUpdateNotFound(t *testing.T) {
	s := NewStore()
	amount := int64(1)
	if _, err := s.Update(42, Patch{Amount: &amount}); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestUpdateRejectsInvalidResult(t *testing.T) {
	s := NewStore()
	rec, _ := s.Create(draft())
	zero := int64(0)
	if _, err := s.Update(rec.ID, Patch{Amount: &zero}); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("got %v, want ErrInvalidAmount", err)
	}
	kept, _ := s.FindByID(rec.ID)
	if kept.Amount != rec.Amount {
		t.Fatal("failed update must not change the record")
	}
}

func TestDeleteIdempotent(t *testing.T) {
	s := NewStore()
	rec, _ := s.Create(draft())

	before := s.List()
	if s.Delete(rec.ID + 1) {
		t.Fatal("deleting nonexistent id returned true")
	}
	after := s.List()
	if len(before) != len(after) {
		t.Fatal("no-op delete changed the store")
	}
	for i := range before {
		if before[i].ID != after[i].ID {
			t.Fatal("no-op delete reordered the store")
		}
	}

	if !s.Delete(rec.ID) {
		t.Fatal("deleting existing id returned false")
	}
	if s.Len() != 0 {
		t.Fatal("record not removed")
	}
}

func TestListInsertionOrder(t *testing.T) {
	s := NewStore()
	// Backdated entry created second: storage order stays insertion order.
	first, _ := s.Create(draft())
	backdated := draft()
	backdated.Date = core.NewDate(2020, 1, 1)
	second, _ := s.Create(backdated)

	list := s.List()
	if list[0].ID != first.ID || list[1].ID != second.ID {
		t.Fatalf("insertion order not preserved: %v", []int64{list[0].ID, list[1].ID})
	}
}

func TestReplace(t *testing.T) {
	s := NewStore()
	s.Create(draft())

	imported := []core.Record{
		{ID: 10, Date: core.NewDate(2024, 1, 1), Kind: core.Income, Amount: 100},
		{ID: 20, Date: core.NewDate(2024, 1, 2), Kind: core.Expense, Amount: 50},
	}
	if err := s.Replace(imported); err != nil {
		t.Fatalf("replace: %v", err)
	}
	list := s.List()
	if len(list) != 2 || list[0].ID != 10 || list[1].ID != 20 {
		t.Fatalf("unexpected contents after replace: %+v", list)
	}
}

func TestReplaceRejectsDuplicateIDs(t *testing.T) {
	s := NewStore()
	dup := []core.Record{
		{ID: 1, Date: core.NewDate(2024, 1, 1), Kind: core.Income, Amount: 100},
		{ID: 1, Date: core.NewDate(2024, 1, 2), Kind: core.Expense, Amount: 50},
	}
	if err := s.Replace(dup); err == nil {
		t.Fatal("expected error for duplicate ids")
	}
	if s.Len() != 0 {
		t.Fatal("failed replace must leave the store untouched")
	}
}
