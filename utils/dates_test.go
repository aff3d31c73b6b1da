package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stayinubud/errors"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestToDateKey(t *testing.T) {
	assert.Equal(t, "2024-06-10", ToDateKey(date(2024, time.June, 10)))

	// The key comes from calendar fields, so a late-evening timestamp in a
	// non-UTC zone must not shift to the neighbouring day.
	jakarta := time.FixedZone("WITA", 8*60*60)
	evening := time.Date(2024, time.June, 10, 23, 30, 0, 0, jakarta)
	assert.Equal(t, "2024-06-10", ToDateKey(evening))
}

func TestParseDateKey(t *testing.T) {
	d, err := ParseDateKey("2024-06-10")
	assert.NoError(t, err)
	assert.Equal(t, date(2024, time.June, 10), d)

	_, err = ParseDateKey("10/06/2024")
	assert.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidFormat, errors.GetAppError(err).Code)
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 3, DaysBetween(date(2024, time.June, 10), date(2024, time.June, 13)))
	assert.Equal(t, -3, DaysBetween(date(2024, time.June, 13), date(2024, time.June, 10)))
	assert.Equal(t, 0, DaysBetween(date(2024, time.June, 10), date(2024, time.June, 10)))

	// Month boundary.
	assert.Equal(t, 2, DaysBetween(date(2024, time.June, 30), date(2024, time.July, 2)))

	// Time-of-day is ignored.
	late := time.Date(2024, time.June, 10, 23, 0, 0, 0, time.UTC)
	early := time.Date(2024, time.June, 11, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysBetween(late, early))
}

func TestDaysBetweenMixedZones(t *testing.T) {
	// A server-local "today" east of UTC against midnight-UTC parsed keys:
	// the count must come from each value's calendar fields, not from the
	// instants, which sit on different UTC days.
	wita := time.FixedZone("WITA", 8*60*60)
	today := time.Date(2024, time.June, 10, 9, 0, 0, 0, wita)

	assert.Equal(t, 1, DaysBetween(today, date(2024, time.June, 11)))
	assert.Equal(t, 0, DaysBetween(today, date(2024, time.June, 10)))
	assert.Equal(t, -1, DaysBetween(today, date(2024, time.June, 9)))
}

func TestIsPastDate(t *testing.T) {
	today := date(2024, time.June, 10)
	assert.True(t, IsPastDate(date(2024, time.June, 9), today))
	assert.False(t, IsPastDate(today, today))
	assert.False(t, IsPastDate(date(2024, time.June, 11), today))
}

func TestIsPastDateMixedZones(t *testing.T) {
	wita := time.FixedZone("WITA", 8*60*60)
	today := time.Date(2024, time.June, 10, 9, 0, 0, 0, wita)

	yesterday, err := ParseDateKey("2024-06-09")
	assert.NoError(t, err)
	assert.True(t, IsPastDate(yesterday, today))

	sameDay, err := ParseDateKey("2024-06-10")
	assert.NoError(t, err)
	assert.False(t, IsPastDate(sameDay, today))
}

func TestEnumerateDaysHalfOpen(t *testing.T) {
	days, err := EnumerateDays(date(2024, time.June, 10), date(2024, time.June, 13))
	assert.NoError(t, err)
	assert.Equal(t, []time.Time{
		date(2024, time.June, 10),
		date(2024, time.June, 11),
		date(2024, time.June, 12),
	}, days)
}

func TestEnumerateDaysEmptyAndInvalid(t *testing.T) {
	days, err := EnumerateDays(date(2024, time.June, 10), date(2024, time.June, 10))
	assert.NoError(t, err)
	assert.Empty(t, days)

	_, err = EnumerateDays(date(2024, time.June, 13), date(2024, time.June, 10))
	assert.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRange, errors.GetAppError(err).Code)
}

func TestEnumerateDateKeys(t *testing.T) {
	keys, err := EnumerateDateKeys(date(2024, time.June, 29), date(2024, time.July, 2))
	assert.NoError(t, err)
	assert.Equal(t, []string{"2024-06-29", "2024-06-30", "2024-07-01"}, keys)
}
