package domain

import (
	"fmt"
	"strings"
	"time"
)

// ShiftDirection says how a due date moves off a closed day.
type ShiftDirection string

const (
	ShiftBefore ShiftDirection = "before"
	ShiftAfter  ShiftDirection = "after"
	ShiftNone   ShiftDirection = "none"
)

// ParseShiftDirection parses a wire tag. An empty string means ShiftNone.
func ParseShiftDirection(s string) (ShiftDirection, error) {
	d := ShiftDirection(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case "":
		return ShiftNone, nil
	case ShiftBefore, ShiftAfter, ShiftNone:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidShiftDirection, s)
}

const (
	// MaxDueDay keeps the due day valid in every month.
	MaxDueDay = 28
	// MaxShiftAttempts bounds the walk off closed days. The longest TARGET2
	// closed run is four days (Good Friday to Easter Monday).
	MaxShiftAttempts = 10
)

// ExpectedPaymentDueDate is a fixed day-of-month payment schedule.
type ExpectedPaymentDueDate struct {
	dayOfMonth int
	shift      ShiftDirection
	calendar   Calendar
}

// NewExpectedPaymentDueDate validates day (1..28) and shift. The TARGET2 calendar is used.
func NewExpectedPaymentDueDate(dayOfMonth int, shift ShiftDirection) (ExpectedPaymentDueDate, error) {
	if dayOfMonth < 1 || dayOfMonth > MaxDueDay {
		return ExpectedPaymentDueDate{}, fmt.Errorf("%w: got %d", ErrInvalidDueDay, dayOfMonth)
	}

	switch shift {
	case ShiftBefore, ShiftAfter, ShiftNone:
	default:
		return ExpectedPaymentDueDate{}, fmt.Errorf("%w: %q", ErrInvalidShiftDirection, shift)
	}

	return ExpectedPaymentDueDate{
		dayOfMonth: dayOfMonth,
		shift:      shift,
		calendar:   Target2Calendar{},
	}, nil
}

func (d ExpectedPaymentDueDate) DayOfMonth() int                { return d.dayOfMonth }
func (d ExpectedPaymentDueDate) ShiftDirection() ShiftDirection { return d.shift }

// WithCalendar returns a copy that shifts around cal's closed days.
func (d ExpectedPaymentDueDate) WithCalendar(cal Calendar) ExpectedPaymentDueDate {
	if cal == nil {
		cal = Target2Calendar{}
	}
	d.calendar = cal
	return d
}

// NextDueDate returns the next due date on or after from. When from's day is already
// past the due day the following month is used. With a shift direction set, the result
// walks one day at a time off closed days and fails with ErrNoOpenDayFound after
// MaxShiftAttempts steps.
func (d ExpectedPaymentDueDate) NextDueDate(from time.Time) (time.Time, error) {
	if d.dayOfMonth < 1 || d.dayOfMonth > MaxDueDay {
		return time.Time{}, fmt.Errorf("%w: got %d", ErrInvalidDueDay, d.dayOfMonth)
	}

	start := Day(from)

	month := start.Month()
	if start.Day() > d.dayOfMonth {
		month++
	}
	due := time.Date(start.Year(), month, d.dayOfMonth, 0, 0, 0, 0, time.UTC)

	if d.shift == ShiftNone || d.shift == "" {
		return due, nil
	}

	step := 1
	if d.shift == ShiftBefore {
		step = -1
	}

	cal := d.calendar
	if cal == nil {
		cal = Target2Calendar{}
	}

	for attempt := 0; attempt <= MaxShiftAttempts; attempt++ {
		closed, err := cal.IsClosed(due)
		if err != nil {
			return time.Time{}, err
		}
		if !closed {
			return due, nil
		}
		due = due.AddDate(0, 0, step)
	}

	return time.Time{}, fmt.Errorf("%w: %d attempts %s day %d", ErrNoOpenDayFound, MaxShiftAttempts, d.shift, d.dayOfMonth)
}
