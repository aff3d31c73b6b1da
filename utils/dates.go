package utils

import (
	"time"

	"stayinubud/errors"
)

// DateKeyLayout is the canonical calendar-date format used as set element
// and map key everywhere: ISO date, no time component, no offset.
const DateKeyLayout = "2006-01-02"

// ToDateKey renders d as YYYY-MM-DD from its calendar fields, so the key is
// stable regardless of the time-of-day or zone carried by d.
func ToDateKey(d time.Time) string {
	return d.Format(DateKeyLayout)
}

// ParseDateKey parses a YYYY-MM-DD string into a midnight UTC date.
func ParseDateKey(key string) (time.Time, error) {
	d, err := time.Parse(DateKeyLayout, key)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrCodeInvalidFormat, "invalid date, expected YYYY-MM-DD", err)
	}
	return d, nil
}

// NormalizeDate strips the time-of-day, keeping year/month/day in d's location.
func NormalizeDate(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// Today returns the current calendar day at midnight.
func Today() time.Time {
	return NormalizeDate(time.Now())
}

// DaysBetween counts signed calendar days from a to b. The calendar fields
// are read in each value's own zone and the diff is taken over midnight UTC
// rebuilds, so neither zone offsets nor DST shifts can skew the count.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}

// IsPastDate reports whether d's calendar day is strictly before today's.
func IsPastDate(d, today time.Time) bool {
	return DaysBetween(today, d) < 0
}

// EnumerateDays yields every calendar date in [start, end), ascending.
// The sequence is finite and restartable; the range is half-open, so the
// end date itself is never produced. end before start is a caller error.
func EnumerateDays(start, end time.Time) ([]time.Time, error) {
	if DaysBetween(start, end) < 0 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidRange, "end date is before start date", nil)
	}
	var days []time.Time
	for d := NormalizeDate(start); DaysBetween(d, end) > 0; d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days, nil
}

// EnumerateDateKeys is EnumerateDays rendered through ToDateKey.
func EnumerateDateKeys(start, end time.Time) ([]string, error) {
	days, err := EnumerateDays(start, end)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(days))
	for _, d := range days {
		keys = append(keys, ToDateKey(d))
	}
	return keys, nil
}
