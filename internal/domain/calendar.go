package domain

import (
	"sort"
	"time"
)

// Calendar decides which days are closed for payment settlement.
type Calendar interface {
	IsClosed(day time.Time) (bool, error)
}

// Holiday is a named closed date.
type Holiday struct {
	Date time.Time
	Name string
}

type fixedHoliday struct {
	month time.Month
	day   int
	name  string
}

var target2FixedHolidays = []fixedHoliday{
	{time.January, 1, "New Year's Day"},
	{time.May, 1, "Labour Day"},
	{time.December, 25, "Christmas Day"},
	{time.December, 26, "Boxing Day"},
}

// Target2Calendar is the EU TARGET2 settlement calendar: weekends, four fixed
// holidays, Good Friday and Easter Monday.
type Target2Calendar struct{}

// IsWeekend reports whether day is a Saturday or Sunday.
func IsWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsClosed reports whether day is a TARGET2 closed day. It fails with
// ErrYearOutOfRange when the Easter date cannot be computed for day's year.
func (Target2Calendar) IsClosed(day time.Time) (bool, error) {
	d := Day(day)

	if IsWeekend(d) {
		return true, nil
	}

	for _, h := range target2FixedHolidays {
		if d.Month() == h.month && d.Day() == h.day {
			return true, nil
		}
	}

	easter, err := EasterSunday(d.Year())
	if err != nil {
		return false, err
	}

	if d.Equal(easter.AddDate(0, 0, -2)) || d.Equal(easter.AddDate(0, 0, 1)) {
		return true, nil
	}

	return false, nil
}

// Holidays lists the named TARGET2 holidays of year in date order. Weekends are not listed.
func (Target2Calendar) Holidays(year int) ([]Holiday, error) {
	easter, err := EasterSunday(year)
	if err != nil {
		return nil, err
	}

	holidays := []Holiday{
		{Date: easter.AddDate(0, 0, -2), Name: "Good Friday"},
		{Date: easter.AddDate(0, 0, 1), Name: "Easter Monday"},
	}
	for _, h := range target2FixedHolidays {
		holidays = append(holidays, Holiday{
			Date: time.Date(year, h.month, h.day, 0, 0, 0, 0, time.UTC),
			Name: h.name,
		})
	}

	sort.Slice(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})

	return holidays, nil
}
