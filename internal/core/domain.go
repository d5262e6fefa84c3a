package core

import (
	"errors"
	"time"
)

type (
	// Date is a calendar date with no time-of-day component,
	// normalized to midnight UTC.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction records a single balance change. Amount is in cents:
	// positive for a deposit, negative for a withdrawal.
	Transaction struct {
		Amount int64
		Date   Date
	}
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNoTransactions    = errors.New("no transactions")
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// Equal reports whether two dates name the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

func (d Date) String() string {
	return d.Format(time.DateOnly)
}

// ParseDate parses a YYYY-MM-DD string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

// Money returns the transaction amount as Money for display.
func (t Transaction) Money() Money {
	return Money{Cents: t.Amount}
}

// IsDeposit reports whether the transaction increased the balance.
func (t Transaction) IsDeposit() bool {
	return t.Amount > 0
}
