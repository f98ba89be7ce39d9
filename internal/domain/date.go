package domain

import "time"

// DateLayout is the calendar day format used in storage and by the remote API.
const DateLayout = "2006-01-02"

// Day truncates t to its calendar day. The result is midnight UTC carrying
// t's year, month and day, so days compare with Equal regardless of zone.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ParseDay(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// StartOfWeek returns the Monday of day's week.
func StartOfWeek(day time.Time) time.Time {
	day = Day(day)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func StartOfMonth(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
}
