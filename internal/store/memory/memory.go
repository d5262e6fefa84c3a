// Package memory is an in-memory implementation of the persistence port,
// used as the default backend and as a test double.
package memory

import (
	"context"
	"fmt"
	"sync"

	"saldo/internal/core"
	"saldo/internal/store"
)

type Store struct {
	mu      sync.Mutex
	ledgers map[string][]core.Transaction
}

func New() *Store {
	return &Store{ledgers: make(map[string][]core.Transaction)}
}

// Save replaces the history stored under id with a private copy of txs.
func (s *Store) Save(_ context.Context, id string, txs []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledgers[id] = append([]core.Transaction(nil), txs...)
	return nil
}

// Load returns a copy of the history stored under id.
func (s *Store) Load(_ context.Context, id string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	txs, ok := s.ledgers[id]
	if !ok {
		return nil, fmt.Errorf("load %q: %w", id, store.ErrNotFound)
	}
	return append([]core.Transaction(nil), txs...), nil
}
