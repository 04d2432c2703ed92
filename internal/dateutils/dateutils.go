// Package dateutils provides the calendar arithmetic the ledger relies on:
// whole-month and whole-day differences, period floors and month stepping.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Common date layouts accepted on the command line and in query strings
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutFull     = "2006-01-02 15:04:05"
	DateLayoutEuropean = "02.01.2006"
)

// CommonFormats is the ordered list of layouts ParseDate tries.
var CommonFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	DateLayoutFull,
	DateLayoutISO,
	DateLayoutEuropean,
}

// ParseDate attempts to parse a date string using CommonFormats.
// Layouts without a zone are interpreted in loc (UTC when nil).
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("unable to parse empty date")
	}

	for _, layout := range CommonFormats {
		if t, err := time.ParseInLocation(layout, dateStr, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// ParseRangeEnd parses the end of a date range. A bare calendar date
// stands for the whole day and resolves to its last instant.
func ParseRangeEnd(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := ParseDate(dateStr, loc)
	if err != nil {
		return t, err
	}
	trimmed := strings.TrimSpace(dateStr)
	if len(trimmed) == len(DateLayoutISO) || len(trimmed) == len(DateLayoutEuropean) {
		return EndOfDay(t), nil
	}
	return t, nil
}

// ParseWeekday parses an English weekday name ("sunday", "Mon", ...).
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || (len(name) >= 3 && strings.HasPrefix(full, name)) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday: %s", s)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// StartOfDay returns midnight of the given date in its own location.
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// EndOfDay returns the last representable instant of the given date.
func EndOfDay(date time.Time) time.Time {
	return StartOfDay(date).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfWeek returns midnight of the most recent weekStart on or before date.
func StartOfWeek(date time.Time, weekStart time.Weekday) time.Time {
	back := (int(date.Weekday()) - int(weekStart) + 7) % 7
	return StartOfDay(date).AddDate(0, 0, -back)
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// EndOfMonth returns the last day of the month for a given date, at midnight
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, -1)
}

// StartOfYear returns January 1st of the date's year.
func StartOfYear(date time.Time) time.Time {
	return time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, date.Location())
}

// AddMonths advances date by n calendar months letting the day overflow into
// the following month (Jan 31 + 1 month = Mar 3 in a non-leap year).
func AddMonths(date time.Time, n int) time.Time {
	return date.AddDate(0, n, 0)
}

// AddMonthsClamped advances date by n calendar months, clamping the day to
// the last day of the target month (Jan 31 + 1 month = Feb 28).
func AddMonthsClamped(date time.Time, n int) time.Time {
	first := time.Date(date.Year(), date.Month()+time.Month(n), 1,
		date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
	day := date.Day()
	if last := daysIn(first); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day,
		date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
}

// MonthsBetween returns the number of whole calendar months from start to
// end. The result is negative when end precedes start and truncates toward
// zero: a month only counts once its anniversary instant has been reached.
func MonthsBetween(start, end time.Time) int {
	end = end.In(start.Location())
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())

	switch {
	case months > 0 && AddMonthsClamped(start, months).After(end):
		months--
	case months < 0 && AddMonthsClamped(start, months).Before(end):
		months++
	}
	return months
}

// DaysBetween returns the number of whole days from start to end, truncated
// toward zero. Days are counted on the calendar of start's location, so a
// DST shift does not lose or gain a day.
func DaysBetween(start, end time.Time) int {
	end = end.In(start.Location())
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	days := int(time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC).
		Sub(time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)).Hours() / 24)

	switch {
	case days > 0 && clock(end) < clock(start):
		days--
	case days < 0 && clock(end) > clock(start):
		days++
	}
	return days
}

func clock(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}

func daysIn(date time.Time) int {
	return time.Date(date.Year(), date.Month()+1, 0, 0, 0, 0, 0, date.Location()).Day()
}
