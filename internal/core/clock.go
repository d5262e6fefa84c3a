package core

import "time"

// Clock supplies the calendar date stamped onto new transactions.
// Production code uses SystemClock; tests substitute a FixedClock so
// transaction dates are deterministic.
type Clock interface {
	Today() Date
}

type systemClock struct{}

func (systemClock) Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// SystemClock returns a Clock backed by the system time.
func SystemClock() Clock {
	return systemClock{}
}

// FixedClock always reports the same date.
type FixedClock struct {
	Date Date
}

func (c FixedClock) Today() Date {
	return c.Date
}
