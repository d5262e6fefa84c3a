// Package file persists transaction histories as JSON lines, one record
// per line, under a caller-chosen path.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"saldo/internal/core"
	"saldo/internal/store"
)

type Store struct {
	mu   sync.Mutex
	base string
}

// New returns a file-backed store. When base is non-empty, relative ids
// are resolved beneath it; otherwise ids are used as paths verbatim.
func New(base string) *Store {
	return &Store{base: base}
}

// record is the on-disk shape of a transaction.
type record struct {
	Amount int64  `json:"amount"`
	Date   string `json:"date"`
}

func (s *Store) path(id string) string {
	if s.base == "" || filepath.IsAbs(id) {
		return id
	}
	return filepath.Join(s.base, id)
}

// Save writes the full history to a temporary file and renames it into
// place, so a failed save never clobbers the previous content.
func (s *Store) Save(_ context.Context, id string, txs []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(id)
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	tmp, err := os.CreateTemp(dir, ".saldo-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	for _, tx := range txs {
		if err := enc.Encode(record{Amount: tx.Amount, Date: tx.Date.String()}); err != nil {
			tmp.Close()
			return fmt.Errorf("encode transaction: %w", err)
		}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}

// Load reads back a previously saved history in its original order.
func (s *Store) Load(_ context.Context, id string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %q: %w", id, store.ErrNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", s.path(id), err)
	}
	defer f.Close()

	var txs []core.Transaction
	dec := json.NewDecoder(f)
	for {
		var rec record
		if err := dec.Decode(&rec); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("decode %s: %w", s.path(id), err)
		}
		date, err := core.ParseDate(rec.Date)
		if err != nil {
			return nil, fmt.Errorf("parse date %q in %s: %w", rec.Date, s.path(id), err)
		}
		txs = append(txs, core.Transaction{Amount: rec.Amount, Date: date})
	}
	return txs, nil
}
