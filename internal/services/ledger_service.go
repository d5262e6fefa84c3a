// Package services wires the ledger to its storage backend and to the
// optional AMQP event stream.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"saldo/internal/amqp"
	"saldo/internal/core"
	"saldo/internal/ledger"
	"saldo/internal/store"
)

// LedgerService orchestrates ledger mutations, persistence and event
// publishing. A nil AMQP client disables events without disabling the
// ledger.
type LedgerService struct {
	ledger     *ledger.Ledger
	store      store.Store
	amqpClient *amqp.Client
}

func NewLedgerService(l *ledger.Ledger, st store.Store, amqpClient *amqp.Client) *LedgerService {
	return &LedgerService{
		ledger:     l,
		store:      st,
		amqpClient: amqpClient,
	}
}

// Deposit records a deposit and publishes a transaction event. Event
// publishing failures are logged, not returned: the ledger change
// already happened.
func (s *LedgerService) Deposit(ctx context.Context, amountCents int64) error {
	if err := s.ledger.Deposit(amountCents); err != nil {
		return err
	}
	s.publishLastTransaction(ctx, amqp.KindDeposit)
	return nil
}

// Withdraw records a withdrawal and publishes a transaction event.
func (s *LedgerService) Withdraw(ctx context.Context, amountCents int64) error {
	if err := s.ledger.Withdraw(amountCents); err != nil {
		return err
	}
	s.publishLastTransaction(ctx, amqp.KindWithdrawal)
	return nil
}

// Balance returns the current balance in cents.
func (s *LedgerService) Balance() int64 {
	return s.ledger.Balance()
}

// History returns the full transaction history in insertion order.
func (s *LedgerService) History() ([]core.Transaction, error) {
	return s.ledger.All()
}

// HistoryOnDate returns the transactions recorded on the given day.
func (s *LedgerService) HistoryOnDate(date core.Date) []core.Transaction {
	return s.ledger.OnDate(date)
}

// HistoryInMonth returns the transactions recorded in the given month.
func (s *LedgerService) HistoryInMonth(year, month int) []core.Transaction {
	return s.ledger.InMonth(year, month)
}

// HistoryInYear returns the transactions recorded in the given year.
func (s *LedgerService) HistoryInYear(year int) []core.Transaction {
	return s.ledger.InYear(year)
}

// Save persists the current history under id.
func (s *LedgerService) Save(ctx context.Context, id string) error {
	return s.ledger.SaveTo(ctx, s.store, id)
}

// Load replaces the current history with the one stored under id.
func (s *LedgerService) Load(ctx context.Context, id string) error {
	return s.ledger.LoadFrom(ctx, s.store, id)
}

func (s *LedgerService) publishLastTransaction(ctx context.Context, kind string) {
	if s.amqpClient == nil {
		return
	}

	txs, err := s.ledger.All()
	if err != nil || len(txs) == 0 {
		slog.WarnContext(ctx, "No transaction to publish", "kind", kind, "error", err)
		return
	}
	last := txs[len(txs)-1]

	msg := amqp.NewTransactionRecordedMessage(kind, last.Amount, last.Date.String(), s.ledger.Balance())
	if err := s.amqpClient.PublishTransactionRecorded(ctx, msg); err != nil {
		// Don't fail the operation - the ledger is already updated
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"kind", kind,
			"amount_cents", last.Amount,
			"error", err)
	}
}

// Close releases the AMQP connection, if any.
func (s *LedgerService) Close() error {
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			return fmt.Errorf("close amqp client: %w", err)
		}
	}
	return nil
}
