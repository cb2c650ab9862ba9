package domain

import (
	"fmt"
	"time"
)

// Computus is only valid for the Gregorian era it was derived for.
const (
	MinComputusYear = 1583
	MaxComputusYear = 4099
)

// EasterSunday returns Easter Sunday of year using the anonymous Gregorian
// algorithm (Meeus/Jones/Butcher). All divisions are integer divisions.
func EasterSunday(year int) (time.Time, error) {
	if year < MinComputusYear || year > MaxComputusYear {
		return time.Time{}, fmt.Errorf("%w: %d not in %d..%d", ErrYearOutOfRange, year, MinComputusYear, MaxComputusYear)
	}

	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// GoodFriday is two days before Easter Sunday.
func GoodFriday(year int) (time.Time, error) {
	easter, err := EasterSunday(year)
	if err != nil {
		return time.Time{}, err
	}
	return easter.AddDate(0, 0, -2), nil
}

// EasterMonday is the day after Easter Sunday.
func EasterMonday(year int) (time.Time, error) {
	easter, err := EasterSunday(year)
	if err != nil {
		return time.Time{}, err
	}
	return easter.AddDate(0, 0, 1), nil
}
