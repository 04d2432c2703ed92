package timeseries

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/lendtrack/internal/dateutils"
)

// Granularity is the width of one bucket on the timeline.
type Granularity string

const (
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
	Year  Granularity = "year"
)

// Granularities lists the built-in granularities, finest first.
var Granularities = []Granularity{Day, Week, Month, Year}

// ParseGranularity accepts both the noun and the adverb form ("month",
// "monthly").
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "daily":
		return Day, nil
	case "week", "weekly":
		return Week, nil
	case "month", "monthly":
		return Month, nil
	case "year", "yearly":
		return Year, nil
	default:
		return "", fmt.Errorf("unknown granularity %q", s)
	}
}

// Strategy describes how one granularity cuts the timeline.
//
// Floor aligns the start of the requested range to the first grid period,
// Next steps from one grid period to the following one, and Key maps an
// event instant to the bucket it lands in.
type Strategy struct {
	Floor func(time.Time) time.Time
	Next  func(time.Time) time.Time
	Key   func(time.Time) time.Time
}

// defaultStrategies builds the strategy table for the built-in
// granularities. Day buckets key events by their exact instant, so an
// event that is not at midnight opens a bucket of its own next to the
// midnight grid bucket; the coarser granularities key events by their
// floored period start.
func defaultStrategies(weekStart time.Weekday) map[Granularity]Strategy {
	startOfWeek := func(t time.Time) time.Time { return dateutils.StartOfWeek(t, weekStart) }

	return map[Granularity]Strategy{
		Day: {
			Floor: dateutils.StartOfDay,
			Next:  func(t time.Time) time.Time { return t.AddDate(0, 0, 1) },
			Key:   func(t time.Time) time.Time { return t },
		},
		Week: {
			Floor: startOfWeek,
			Next:  func(t time.Time) time.Time { return t.AddDate(0, 0, 7) },
			Key:   startOfWeek,
		},
		Month: {
			Floor: dateutils.StartOfMonth,
			Next:  func(t time.Time) time.Time { return t.AddDate(0, 1, 0) },
			Key:   dateutils.StartOfMonth,
		},
		Year: {
			Floor: dateutils.StartOfYear,
			Next:  func(t time.Time) time.Time { return t.AddDate(1, 0, 0) },
			Key:   dateutils.StartOfYear,
		},
	}
}

// Label renders a bucket period the way charts show it on the axis.
func Label(g Granularity, period time.Time) string {
	switch g {
	case Month:
		return period.Format("Jan 2006")
	case Year:
		return period.Format("2006")
	default:
		return period.Format("Jan 2")
	}
}
