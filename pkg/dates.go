package pkg

import (
	"fmt"
	"time"
)

// DateLayout is the ISO-8601 calendar date layout used for date-only keys.
const DateLayout = "2006-01-02"

// DateOnly strips the time of day, keeping the location of t.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// AddDays moves the calendar date by n days. DST safe, unlike adding 24h multiples.
func AddDays(t time.Time, n int) time.Time {
	return DateOnly(t).AddDate(0, 0, n)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ISOWeekday returns 1 for Monday ... 7 for Sunday.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// WithinDates reports whether the calendar date of t is in [from, to], both inclusive.
func WithinDates(t, from, to time.Time) bool {
	d := DateOnly(t)
	return !d.Before(DateOnly(from)) && !d.After(DateOnly(to))
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date [%s]: %w", s, err)
	}
	return t, nil
}
