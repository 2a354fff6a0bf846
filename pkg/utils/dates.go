package utils

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// All stored timestamps are UTC. A business day is identified by its calendar
// date, stored as midnight UTC of that date.

// StartOfDay returns midnight UTC of t's calendar date.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the last nanosecond of t's calendar date in UTC.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// MonthRange returns the first and last instant of a calendar month in UTC.
func MonthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// BusinessToday returns the current business date for a fixed UTC offset.
func BusinessToday(now time.Time, offsetMinutes int) time.Time {
	local := now.UTC().Add(time.Duration(offsetMinutes) * time.Minute)
	return StartOfDay(local)
}

// WeekdaysBetween counts Monday..Friday dates from start to end, both inclusive.
func WeekdaysBetween(start, end time.Time) int {
	from, to := StartOfDay(start), StartOfDay(end)
	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
