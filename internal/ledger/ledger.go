// Package ledger holds the account balance and its ordered transaction
// history, and answers date-filtered history queries.
package ledger

import (
	"context"
	"fmt"

	"saldo/internal/core"
	"saldo/internal/store"
)

// Ledger is the sole owner of the balance and the transaction history.
// It is not safe for concurrent use; operations are meant to be applied
// one at a time by a single caller.
type Ledger struct {
	balance      int64
	transactions []core.Transaction
	clock        core.Clock
}

// New returns an empty ledger with balance 0. A nil clock falls back to
// the system clock.
func New(clock core.Clock) *Ledger {
	if clock == nil {
		clock = core.SystemClock()
	}
	return &Ledger{clock: clock}
}

// Deposit adds amount (in cents) to the balance and records a
// transaction dated today. Amounts <= 0 leave the ledger untouched and
// return core.ErrInvalidAmount.
func (l *Ledger) Deposit(amount int64) error {
	if amount <= 0 {
		return core.ErrInvalidAmount
	}
	l.balance += amount
	l.transactions = append(l.transactions, core.Transaction{
		Amount: amount,
		Date:   l.clock.Today(),
	})
	return nil
}

// Withdraw subtracts amount (in cents) from the balance and records a
// negative transaction dated today. The balance never goes below zero:
// an unaffordable withdrawal returns core.ErrInsufficientFunds and
// changes nothing.
func (l *Ledger) Withdraw(amount int64) error {
	if amount <= 0 {
		return core.ErrInvalidAmount
	}
	if amount > l.balance {
		return core.ErrInsufficientFunds
	}
	l.balance -= amount
	l.transactions = append(l.transactions, core.Transaction{
		Amount: -amount,
		Date:   l.clock.Today(),
	})
	return nil
}

// Balance returns the current balance in cents.
func (l *Ledger) Balance() int64 {
	return l.balance
}

// All returns the full history in insertion order. An empty history
// returns core.ErrNoTransactions instead of an empty listing.
func (l *Ledger) All() ([]core.Transaction, error) {
	if len(l.transactions) == 0 {
		return nil, core.ErrNoTransactions
	}
	return append([]core.Transaction(nil), l.transactions...), nil
}

// OnDate returns the transactions recorded on exactly the given day,
// preserving insertion order. The result may be empty.
func (l *Ledger) OnDate(date core.Date) []core.Transaction {
	var out []core.Transaction
	for _, tx := range l.transactions {
		if tx.Date.Equal(date) {
			out = append(out, tx)
		}
	}
	return out
}

// InMonth returns the transactions recorded in the given year and month,
// preserving insertion order. Out-of-range months simply match nothing.
func (l *Ledger) InMonth(year, month int) []core.Transaction {
	var out []core.Transaction
	for _, tx := range l.transactions {
		if tx.Date.Year() == year && tx.Date.Month() == month {
			out = append(out, tx)
		}
	}
	return out
}

// InYear returns the transactions recorded in the given year, preserving
// insertion order.
func (l *Ledger) InYear(year int) []core.Transaction {
	var out []core.Transaction
	for _, tx := range l.transactions {
		if tx.Date.Year() == year {
			out = append(out, tx)
		}
	}
	return out
}

// SaveTo hands the current history to the store. The ledger's own state
// is unaffected either way.
func (l *Ledger) SaveTo(ctx context.Context, s store.Saver, id string) error {
	if err := s.Save(ctx, id, l.transactions); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}
	return nil
}

// LoadFrom replaces the history with the one stored under id. On failure
// the history becomes empty and the error is returned.
//
// The balance is never rebuilt from the loaded history, so after a load
// it can disagree with the sum of the transactions. That matches the
// long-standing behavior this ledger replicates; see DESIGN.md before
// changing it.
func (l *Ledger) LoadFrom(ctx context.Context, s store.Loader, id string) error {
	txs, err := s.Load(ctx, id)
	if err != nil {
		l.transactions = nil
		return fmt.Errorf("load transactions: %w", err)
	}
	l.transactions = append([]core.Transaction(nil), txs...)
	return nil
}
