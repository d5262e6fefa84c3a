package worker

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"saldo/internal/amqp"
)

func newTestWorker(t *testing.T) (*AuditWorker, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audit.log")
	w, err := NewAuditWorker(path, time.Second)
	if err != nil {
		t.Fatalf("new worker: %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w, path
}

func TestHandleTransactionRecorded(t *testing.T) {
	ctx := context.Background()
	w, path := newTestWorker(t)

	msgs := []*amqp.TransactionRecordedMessage{
		amqp.NewTransactionRecordedMessage(amqp.KindDeposit, 1000, "2024-03-15", 1000),
		amqp.NewTransactionRecordedMessage(amqp.KindWithdrawal, -250, "2024-03-16", 750),
	}
	for _, msg := range msgs {
		if err := w.HandleTransactionRecorded(ctx, msg); err != nil {
			t.Fatalf("handle: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read audit log: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), string(data))
	}
	if !strings.HasPrefix(lines[0], "2024-03-15 deposit 10.00 balance 10.00") {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2024-03-16 withdrawal -2.50 balance 7.50") {
		t.Fatalf("unexpected second line: %q", lines[1])
	}
}

func TestHandleRejectsUnknownKind(t *testing.T) {
	w, _ := newTestWorker(t)
	msg := amqp.NewTransactionRecordedMessage("transfer", 100, "2024-03-15", 100)
	if err := w.HandleTransactionRecorded(context.Background(), msg); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestAppendsAcrossReopens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "audit.log")

	for i := 0; i < 2; i++ {
		w, err := NewAuditWorker(path, time.Second)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		msg := amqp.NewTransactionRecordedMessage(amqp.KindDeposit, 100, "2024-03-15", 100)
		if err := w.HandleTransactionRecorded(ctx, msg); err != nil {
			t.Fatalf("handle %d: %v", i, err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("close %d: %v", i, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := strings.Count(string(data), "\n"); got != 2 {
		t.Fatalf("expected 2 lines after reopen, got %d", got)
	}
}

// fakeSource delivers a fixed batch of events, then blocks until the
// context ends, like a quiet broker connection would.
type fakeSource struct {
	events []*amqp.TransactionRecordedMessage
}

func (f *fakeSource) ConsumeTransactionEvents(ctx context.Context, handler func(*amqp.TransactionRecordedMessage) error) error {
	for _, msg := range f.events {
		if err := handler(msg); err != nil {
			return err
		}
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestRunConsumesAndStopsOnCancel(t *testing.T) {
	w, path := newTestWorker(t)

	src := &fakeSource{events: []*amqp.TransactionRecordedMessage{
		amqp.NewTransactionRecordedMessage(amqp.KindDeposit, 500, "2024-03-15", 500),
	}}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx, src) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}

	w.Close()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "deposit 5.00") {
		t.Fatalf("event not audited: %q", string(data))
	}
}
