package memory

import (
	"context"
	"errors"
	"testing"

	"saldo/internal/core"
	"saldo/internal/store"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()

	txs := []core.Transaction{
		{Amount: 100, Date: core.NewDate(2024, 1, 5)},
		{Amount: -30, Date: core.NewDate(2024, 2, 1)},
		{Amount: 70, Date: core.NewDate(2024, 1, 5)},
	}
	if err := s.Save(ctx, "main", txs); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(ctx, "main")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(txs) {
		t.Fatalf("got %d transactions, want %d", len(got), len(txs))
	}
	for i := range txs {
		if got[i].Amount != txs[i].Amount || !got[i].Date.Equal(txs[i].Date) {
			t.Fatalf("entry %d mismatch: %+v != %+v", i, got[i], txs[i])
		}
	}
}

func TestLoadMissingID(t *testing.T) {
	s := New()
	if _, err := s.Load(context.Background(), "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s := New()
	if err := s.Save(ctx, "main", []core.Transaction{{Amount: 1, Date: core.NewDate(2024, 1, 1)}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, "main", []core.Transaction{{Amount: 2, Date: core.NewDate(2024, 1, 2)}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx, "main")
	if err != nil || len(got) != 1 || got[0].Amount != 2 {
		t.Fatalf("overwrite failed: %+v err=%v", got, err)
	}
}

func TestLoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := New()
	if err := s.Save(ctx, "main", []core.Transaction{{Amount: 5, Date: core.NewDate(2024, 1, 1)}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	first, _ := s.Load(ctx, "main")
	first[0].Amount = 999
	second, _ := s.Load(ctx, "main")
	if second[0].Amount != 5 {
		t.Fatal("mutating a loaded slice leaked into the store")
	}
}
