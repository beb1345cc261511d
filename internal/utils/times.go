package utils

import (
	"fmt"
	"math"
	"time"
)

const DateLayout = time.DateOnly

// ParseDate validates a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// Today returns the current calendar date in loc.
func Today(loc *time.Location) string {
	return time.Now().In(loc).Format(DateLayout)
}

// WeekBounds returns the Monday and Sunday of the ISO week containing t,
// using t's own calendar date.
func WeekBounds(t time.Time) (string, string) {
	year, week := t.ISOWeek()
	start := FirstDayOfISOWeek(year, week)
	return start.Format(DateLayout), start.AddDate(0, 0, 6).Format(DateLayout)
}

// FirstDayOfISOWeek returns the Monday starting the given ISO week.
func FirstDayOfISOWeek(year, week int) time.Time {
	date := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	isoYear, isoWeek := date.ISOWeek()

	for date.Weekday() != time.Monday {
		date = date.AddDate(0, 0, -1)
		isoYear, isoWeek = date.ISOWeek()
	}

	for isoYear < year {
		date = date.AddDate(0, 0, 7)
		isoYear, isoWeek = date.ISOWeek()
	}

	for isoWeek < week {
		date = date.AddDate(0, 0, 7)
		_, isoWeek = date.ISOWeek()
	}

	return date
}

// FormatHours renders fractional hours as "2h 30m".
func FormatHours(hours float64) string {
	minutes := int(math.Round(hours * 60))
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
