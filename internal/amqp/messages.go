package amqp

import (
	"encoding/json"
	"time"
)

// Event kinds carried by TransactionRecordedMessage.
const (
	KindDeposit    = "deposit"
	KindWithdrawal = "withdrawal"
)

// TransactionRecordedMessage announces that the ledger accepted a
// deposit or withdrawal. AmountCents is signed the same way as the
// ledger's own records; BalanceCents is the balance after the change.
type TransactionRecordedMessage struct {
	Kind         string    `json:"kind"`
	AmountCents  int64     `json:"amount_cents"`
	Date         string    `json:"date"`
	BalanceCents int64     `json:"balance_cents"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewTransactionRecordedMessage creates an event for a just-recorded
// transaction.
func NewTransactionRecordedMessage(kind string, amountCents int64, date string, balanceCents int64) *TransactionRecordedMessage {
	return &TransactionRecordedMessage{
		Kind:         kind,
		AmountCents:  amountCents,
		Date:         date,
		BalanceCents: balanceCents,
		Timestamp:    time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionRecordedMessageFromJSON creates a message from JSON bytes
func TransactionRecordedMessageFromJSON(data []byte) (*TransactionRecordedMessage, error) {
	var msg TransactionRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
