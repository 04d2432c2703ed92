package models

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/lendtrack/internal/dateutils"
	"fjacquet/lendtrack/internal/ledgererror"
)

// ParseStatus parses an obligation status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPending, StatusActive, StatusCompleted, StatusOverdue:
		return st, nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}

// DateRange bounds instants inclusively. A zero bound is open.
type DateRange struct {
	Start time.Time `json:"start,omitempty"`
	End   time.Time `json:"end,omitempty"`
}

// Contains reports whether t falls within the range.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// ParseDateRange parses optional range bounds given on the command line or
// in a query string. A bare calendar end date covers that whole day.
func ParseDateRange(start, end string) (DateRange, error) {
	var r DateRange
	if start != "" {
		t, err := dateutils.ParseDate(start, time.UTC)
		if err != nil {
			return r, &ledgererror.ValidationError{Field: "start", Value: start, Reason: err.Error()}
		}
		r.Start = t
	}
	if end != "" {
		t, err := dateutils.ParseRangeEnd(end, time.UTC)
		if err != nil {
			return r, &ledgererror.ValidationError{Field: "end", Value: end, Reason: err.Error()}
		}
		r.End = t
	}
	if !r.Start.IsZero() && !r.End.IsZero() && r.Start.After(r.End) {
		return r, &ledgererror.ValidationError{Field: "start", Value: start, Reason: "must not be after end"}
	}
	return r, nil
}

// ObligationFilter selects obligations. Empty fields match everything;
// the date range applies to the start instant.
type ObligationFilter struct {
	Direction  Direction
	Status     Status
	ContactIDs []string
	DateRange
}

// NewObligationFilter builds a filter from raw user input. Empty strings
// leave the matching criterion unset.
func NewObligationFilter(direction, status string, contactIDs []string, start, end string) (ObligationFilter, error) {
	f := ObligationFilter{ContactIDs: contactIDs}
	if direction != "" {
		d, err := ParseDirection(direction)
		if err != nil {
			return f, &ledgererror.ValidationError{Field: "type", Value: direction, Reason: err.Error()}
		}
		f.Direction = d
	}
	if status != "" {
		st, err := ParseStatus(status)
		if err != nil {
			return f, &ledgererror.ValidationError{Field: "status", Value: status, Reason: err.Error()}
		}
		f.Status = st
	}
	r, err := ParseDateRange(start, end)
	if err != nil {
		return f, err
	}
	f.DateRange = r
	return f, nil
}

// Match reports whether o passes every set criterion.
func (f ObligationFilter) Match(o Obligation) bool {
	if f.Direction != "" && o.Direction != f.Direction {
		return false
	}
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if !matchContact(f.ContactIDs, o.ContactID) {
		return false
	}
	return f.Contains(o.StartDate)
}

// FilterObligations returns the obligations matching f in input order.
func FilterObligations(obligations []Obligation, f ObligationFilter) []Obligation {
	matched := make([]Obligation, 0, len(obligations))
	for _, o := range obligations {
		if f.Match(o) {
			matched = append(matched, o)
		}
	}
	return matched
}

// ActivityFilter selects activities by the contact of their obligation
// and by creation instant.
type ActivityFilter struct {
	ContactIDs []string
	DateRange
}

// NewActivityFilter builds a filter from raw user input.
func NewActivityFilter(contactIDs []string, start, end string) (ActivityFilter, error) {
	r, err := ParseDateRange(start, end)
	if err != nil {
		return ActivityFilter{}, err
	}
	return ActivityFilter{ContactIDs: contactIDs, DateRange: r}, nil
}

// Match reports whether activity a of obligation o passes the filter.
func (f ActivityFilter) Match(o Obligation, a Activity) bool {
	return matchContact(f.ContactIDs, o.ContactID) && f.Contains(a.CreatedAt)
}

func matchContact(ids []string, id string) bool {
	if len(ids) == 0 {
		return true
	}
	for _, want := range ids {
		if want == id {
			return true
		}
	}
	return false
}
