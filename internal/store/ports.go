package store

import (
	"context"
	"errors"

	"saldo/internal/core"
)

// ErrNotFound is returned by Load when no history was ever saved under
// the requested id.
var ErrNotFound = errors.New("ledger not found")

// Ports for outbound persistence adapters.
type (
	// Saver writes a full transaction history under a caller-chosen id,
	// replacing any prior content. Order and exact (amount, date) values
	// must survive a subsequent Load.
	Saver interface {
		Save(ctx context.Context, id string, txs []core.Transaction) error
	}

	// Loader reads back a previously saved history in its original order.
	// A missing, corrupt or unreadable id yields an error, never a
	// partial result.
	Loader interface {
		Load(ctx context.Context, id string) ([]core.Transaction, error)
	}
)

// Store combines both sides of the persistence port.
type Store interface {
	Saver
	Loader
}
