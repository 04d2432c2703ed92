package timeseries

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/lendtrack/internal/dateutils"
	"fjacquet/lendtrack/internal/models"
)

// Preset names a commonly used date range.
type Preset string

const (
	PresetToday     Preset = "today"
	PresetYesterday Preset = "yesterday"
	PresetLast7     Preset = "last-7-days"
	PresetLast30    Preset = "last-30-days"
	PresetLast90    Preset = "last-90-days"
	PresetLast180   Preset = "last-180-days"
	PresetLast365   Preset = "last-365-days"
	PresetThisMonth Preset = "this-month"
	PresetAllTime   Preset = "all-time"
)

var trailingDays = map[Preset]int{
	PresetLast7:   7,
	PresetLast30:  30,
	PresetLast90:  90,
	PresetLast180: 180,
	PresetLast365: 365,
}

// Presets lists every preset in menu order.
var Presets = []Preset{
	PresetToday, PresetYesterday, PresetLast7, PresetLast30, PresetLast90,
	PresetLast180, PresetLast365, PresetThisMonth, PresetAllTime,
}

// ParsePreset validates a preset name.
func ParsePreset(s string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown date range preset %q", s)
}

// ResolvePreset turns a preset into a concrete [start, end] range relative
// to now. The all-time preset spans the data itself.
func ResolvePreset(p Preset, now time.Time, obligations []models.Obligation) (time.Time, time.Time, error) {
	switch p {
	case PresetToday:
		return dateutils.StartOfDay(now), dateutils.EndOfDay(now), nil
	case PresetYesterday:
		y := now.AddDate(0, 0, -1)
		return dateutils.StartOfDay(y), dateutils.EndOfDay(y), nil
	case PresetThisMonth:
		return dateutils.StartOfMonth(now), dateutils.EndOfMonth(now), nil
	case PresetAllTime:
		start, end := DataRange(obligations, now)
		return start, end, nil
	}

	if n, ok := trailingDays[p]; ok {
		end := dateutils.EndOfDay(now)
		return dateutils.StartOfDay(end.AddDate(0, 0, -(n - 1))), end, nil
	}
	return time.Time{}, time.Time{}, fmt.Errorf("unknown date range preset %q", p)
}

// DataRange returns the earliest and latest instant found in the data:
// obligation starts and the creation instants of all their activities.
// With no obligations both ends are now.
func DataRange(obligations []models.Obligation, now time.Time) (time.Time, time.Time) {
	if len(obligations) == 0 {
		return now, now
	}

	first, last := obligations[0].StartDate, obligations[0].StartDate
	widen := func(t time.Time) {
		if t.Before(first) {
			first = t
		}
		if t.After(last) {
			last = t
		}
	}
	for _, o := range obligations {
		widen(o.StartDate)
		for _, a := range o.Activities {
			widen(a.CreatedAt)
		}
	}
	return first, last
}
