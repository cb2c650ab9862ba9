package domain

import (
	"fmt"
	"strings"
	"time"
)

// Cadence is the interval of a recurring schedule.
type Cadence string

const (
	CadenceWeekly  Cadence = "weekly"
	CadenceMonthly Cadence = "monthly"
	CadenceYearly  Cadence = "yearly"
)

// Frequency computes recurring dates for a cadence.
//
// Month and year steps use Go's normalizing calendar arithmetic: a target day that
// does not exist overflows into the following month instead of being clamped.
// 31 Jan + 1 month is 3 Mar (2 Mar in a leap year) and 29 Feb + 1 year is 1 Mar.
// Stored schedules depend on this, so it must not change.
type Frequency struct {
	cadence Cadence
}

// NewFrequency validates cadence.
func NewFrequency(cadence Cadence) (Frequency, error) {
	switch cadence {
	case CadenceWeekly, CadenceMonthly, CadenceYearly:
		return Frequency{cadence: cadence}, nil
	}
	return Frequency{}, fmt.Errorf("%w: %q", ErrInvalidCadence, cadence)
}

// ParseFrequency parses a wire tag such as "monthly".
func ParseFrequency(s string) (Frequency, error) {
	return NewFrequency(Cadence(strings.ToLower(strings.TrimSpace(s))))
}

func (f Frequency) Cadence() Cadence { return f.cadence }
func (f Frequency) String() string   { return string(f.cadence) }

// NextOccurrence returns the day one cadence step after from.
func (f Frequency) NextOccurrence(from time.Time) time.Time {
	d := Day(from)

	switch f.cadence {
	case CadenceWeekly:
		return d.AddDate(0, 0, 7)
	case CadenceMonthly:
		return d.AddDate(0, 1, 0)
	case CadenceYearly:
		return d.AddDate(1, 0, 0)
	}

	// zero Frequency: no step
	return d
}

// OccurrencesBetween returns every occurrence from start through end inclusive, in order.
// The first element is always start.
func (f Frequency) OccurrencesBetween(start, end time.Time) ([]time.Time, error) {
	from, to := Day(start), Day(end)
	if from.After(to) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange, from.Format(DateLayout), to.Format(DateLayout))
	}

	if _, err := NewFrequency(f.cadence); err != nil {
		return nil, err
	}

	var out []time.Time
	for d := from; !d.After(to); d = f.NextOccurrence(d) {
		out = append(out, d)
	}

	return out, nil
}
