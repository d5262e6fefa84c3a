package amqp

import (
	"testing"
	"time"
)

func TestNewTransactionRecordedMessage(t *testing.T) {
	before := time.Now()
	msg := NewTransactionRecordedMessage(KindWithdrawal, -500, "2024-03-15", 1500)

	if msg.Kind != KindWithdrawal {
		t.Errorf("Kind = %q, want %q", msg.Kind, KindWithdrawal)
	}
	if msg.AmountCents != -500 {
		t.Errorf("AmountCents = %d, want -500", msg.AmountCents)
	}
	if msg.Date != "2024-03-15" {
		t.Errorf("Date = %q", msg.Date)
	}
	if msg.BalanceCents != 1500 {
		t.Errorf("BalanceCents = %d, want 1500", msg.BalanceCents)
	}
	if msg.Timestamp.Before(before) {
		t.Error("Timestamp should be set to now")
	}
}

func TestTransactionRecordedMessageFromJSON(t *testing.T) {
	orig := NewTransactionRecordedMessage(KindDeposit, 1000, "2024-03-15", 1000)
	body, err := orig.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := TransactionRecordedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Kind != orig.Kind || got.AmountCents != orig.AmountCents ||
		got.Date != orig.Date || got.BalanceCents != orig.BalanceCents {
		t.Fatalf("round trip mismatch: %+v != %+v", got, orig)
	}

	if _, err := TransactionRecordedMessageFromJSON([]byte("{broken")); err == nil {
		t.Fatal("expected error for malformed body")
	}
}
