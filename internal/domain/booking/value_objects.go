package booking

import (
	"errors"
	"time"
)

var (
	ErrInvalidDateRange  = errors.New("start date must be before end date")
	ErrStartDateInPast   = errors.New("start date cannot be in the past")
	ErrInvalidDuration   = errors.New("booking duration must be at least one day")
	ErrNegativePrice     = errors.New("price cannot be negative")
	ErrInvalidStatus     = errors.New("invalid booking status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// DatePeriod is the half-open rental interval [start, end). Two periods
// overlap iff each one starts before the other ends; a booking ending at
// the exact instant another starts does not collide.
type DatePeriod struct {
	start time.Time
	end   time.Time
}

// NewDatePeriod normalizes both bounds to UTC.
func NewDatePeriod(start, end time.Time) (DatePeriod, error) {
	if !start.Before(end) {
		return DatePeriod{}, ErrInvalidDateRange
	}
	return DatePeriod{start: start.UTC(), end: end.UTC()}, nil
}

func (p DatePeriod) Start() time.Time {
	return p.start
}

func (p DatePeriod) End() time.Time {
	return p.end
}

func (p DatePeriod) Overlaps(other DatePeriod) bool {
	return p.start.Before(other.end) && other.start.Before(p.end)
}

// Days bills any partial day as a full day.
func (p DatePeriod) Days() int {
	d := p.end.Sub(p.start)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

func (p DatePeriod) ValidateNotPastAt(now time.Time) error {
	if p.start.Before(now) {
		return ErrStartDateInPast
	}
	return nil
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativePrice
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Units() float64 {
	return float64(m.cents) / 100.0
}
