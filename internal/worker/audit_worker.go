// Package worker consumes ledger transaction events and appends them to
// a plain-text audit log, giving the single-account ledger a durable
// trail independent of its snapshots.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"saldo/internal/amqp"
	"saldo/internal/core"
)

// EventSource delivers transaction events to a handler until the context
// ends. *amqp.Client satisfies it.
type EventSource interface {
	ConsumeTransactionEvents(ctx context.Context, handler func(*amqp.TransactionRecordedMessage) error) error
}

// AuditWorker appends consumed events to an append-only log file.
type AuditWorker struct {
	mu   sync.Mutex
	file *os.File

	flushInterval time.Duration
}

func NewAuditWorker(path string, flushInterval time.Duration) (*AuditWorker, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create audit log directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}

	if flushInterval <= 0 {
		flushInterval = 30 * time.Second
	}

	return &AuditWorker{file: file, flushInterval: flushInterval}, nil
}

// HandleTransactionRecorded appends one event as a single log line.
func (w *AuditWorker) HandleTransactionRecorded(ctx context.Context, msg *amqp.TransactionRecordedMessage) error {
	if msg.Kind != amqp.KindDeposit && msg.Kind != amqp.KindWithdrawal {
		return fmt.Errorf("unknown event kind %q", msg.Kind)
	}

	line := fmt.Sprintf("%s %s %s balance %s recorded_at %s\n",
		msg.Date,
		msg.Kind,
		core.FormatCents(msg.AmountCents),
		core.FormatCents(msg.BalanceCents),
		msg.Timestamp.UTC().Format(time.RFC3339))

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.file.WriteString(line); err != nil {
		return fmt.Errorf("append audit line: %w", err)
	}

	slog.InfoContext(ctx, "Audited transaction event",
		"kind", msg.Kind,
		"amount_cents", msg.AmountCents)

	return nil
}

// Run consumes events from src until ctx is cancelled, flushing the log
// to disk on a timer.
func (w *AuditWorker) Run(ctx context.Context, src EventSource) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return src.ConsumeTransactionEvents(ctx, func(msg *amqp.TransactionRecordedMessage) error {
			return w.HandleTransactionRecorded(ctx, msg)
		})
	})

	g.Go(func() error {
		ticker := time.NewTicker(w.flushInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := w.flush(); err != nil {
					slog.ErrorContext(ctx, "Audit log flush failed", "error", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (w *AuditWorker) flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Sync()
}

// Close flushes and closes the audit log.
func (w *AuditWorker) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.file.Sync(); err != nil {
		w.file.Close()
		return fmt.Errorf("sync audit log: %w", err)
	}
	return w.file.Close()
}
