package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"saldo/internal/core"
	"saldo/internal/store"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New(t.TempDir())

	txs := []core.Transaction{
		{Amount: 100, Date: core.NewDate(2024, 1, 5)},
		{Amount: -30, Date: core.NewDate(2024, 2, 1)},
		{Amount: 70, Date: core.NewDate(2024, 1, 5)},
	}
	if err := s.Save(ctx, "ledger.jsonl", txs); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(ctx, "ledger.jsonl")
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

func TestSaveOverwritesPriorContent(t *testing.T) {
	ctx := context.Background()
	s := New(t.TempDir())

	if err := s.Save(ctx, "ledger.jsonl", []core.Transaction{
		{Amount: 1, Date: core.NewDate(2024, 1, 1)},
		{Amount: 2, Date: core.NewDate(2024, 1, 2)},
	}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := s.Save(ctx, "ledger.jsonl", []core.Transaction{
		{Amount: 3, Date: core.NewDate(2024, 1, 3)},
	}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := s.Load(ctx, "ledger.jsonl")
	if err != nil || len(got) != 1 || got[0].Amount != 3 {
		t.Fatalf("overwrite failed: %+v err=%v", got, err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.Load(context.Background(), "nope.jsonl"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.jsonl")
	if err := os.WriteFile(path, []byte("{not json\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s := New(dir)
	if _, err := s.Load(context.Background(), "ledger.jsonl"); err == nil {
		t.Fatal("expected error for corrupt file")
	}
}

func TestLoadBadDate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.jsonl")
	if err := os.WriteFile(path, []byte(`{"amount":100,"date":"05/01/2024"}`+"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s := New(dir)
	if _, err := s.Load(context.Background(), "ledger.jsonl"); err == nil {
		t.Fatal("expected error for unparseable date")
	}
}

func TestSaveEmptyHistory(t *testing.T) {
	ctx := context.Background()
	s := New(t.TempDir())
	if err := s.Save(ctx, "ledger.jsonl", nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx, "ledger.jsonl")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty history, got %+v", got)
	}
}

func TestAbsolutePathsBypassBase(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	other := t.TempDir()
	s := New(base)

	abs := filepath.Join(other, "elsewhere.jsonl")
	if err := s.Save(ctx, abs, []core.Transaction{{Amount: 7, Date: core.NewDate(2024, 6, 1)}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(abs); err != nil {
		t.Fatalf("file not written at absolute path: %v", err)
	}
	got, err := s.Load(ctx, abs)
	if err != nil || len(got) != 1 {
		t.Fatalf("load via absolute path failed: %+v err=%v", got, err)
	}
}
