package storage

import (
	"context"
	"errors"
	"testing"

	"noteup/internal/core"
)

const testSlot = "noteup_data_v1"

func sample() []core.Record {
	return []core.Record{
		{ID: 1, Date: core.NewDate(2024, 1, 1), Kind: core.Income, Amount: 50000, Currency: "IDR", Note: "salary"},
		{ID: 2, Date: core.NewDate(2024, 1, 2), Kind: core.Expense, Amount: 20000},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	a := NewAdapter(NewMemKV(), testSlot)
	ctx := context.Background()

	if err := a.Save(ctx, sample()); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := a.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := sample()
	if len(got) != len(want) {
		t.Fatalf("loaded %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLoadAbsentSlot(t *testing.T) {
	a := NewAdapter(NewMemKV(), testSlot)
	got, err := a.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty ledger, got %d records", len(got))
	}
}

func TestLoadCorruptSlot(t *testing.T) {
	kv := NewMemKV()
	ctx := context.Background()
	if err := kv.Put(ctx, testSlot, []byte(`{{{not json`)); err != nil {
		t.Fatal(err)
	}

	a := NewAdapter(kv, testSlot)
	if _, err := a.Load(ctx); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("got %v, want ErrCorrupt", err)
	}
}

func TestLoadLegacyBareArray(t *testing.T) {
	kv := NewMemKV()
	ctx := context.Background()
	legacy := `[{"id":1,"date":"2024-01-01","kind":"income","amount":50000}]`
	if err := kv.Put(ctx, testSlot, []byte(legacy)); err != nil {
		t.Fatal(err)
	}

	a := NewAdapter(kv, testSlot)
	got, err := a.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 || got[0].Amount != 50000 {
		t.Fatalf("unexpected legacy decode: %+v", got)
	}
}

// failingKV refuses writes, standing in for a full store.
type failingKV struct {
	*MemKV
	err error
}

func (f *failingKV) Put(context.Context, string, []byte) error { return f.err }

func TestSaveSurfacesWriteError(t *testing.T) {
	quota := errors.New("quota exceeded")
	a := NewAdapter(&failingKV{MemKV: NewMemKV(), err: quota}, testSlot)

	err := a.Save(context.Background(), sample())
	var werr *WriteError
	if !errors.As(err, &werr) {
		t.Fatalf("got %v, want *WriteError", err)
	}
	if !errors.Is(err, quota) {
		t.Fatalf("cause not preserved: %v", err)
	}
}
