// Package timeseries buckets obligations and their payments into periods
// and carries a running net balance across the whole timeline.
package timeseries

import (
	"sort"
	"time"

	"fjacquet/lendtrack/internal/models"

	"github.com/shopspring/decimal"
)

// Frame is the requested window, both ends inclusive.
type Frame struct {
	Start       time.Time
	End         time.Time
	Granularity Granularity
}

// Contains reports whether t falls within the frame, boundaries included.
func (f Frame) Contains(t time.Time) bool {
	return !t.Before(f.Start) && !t.After(f.End)
}

// Bucket is one period's worth of principal and payment figures.
// CumulativeNet is what the counterparties owe the user minus what the
// user owes them, summed from the first bucket up to this one.
type Bucket struct {
	Period             time.Time       `json:"date"`
	LendingPrincipal   decimal.Decimal `json:"lending_transactions"`
	BorrowingPrincipal decimal.Decimal `json:"borrowing_transactions"`
	LendingPayments    decimal.Decimal `json:"lending_payments"`
	BorrowingPayments  decimal.Decimal `json:"borrowing_payments"`
	CumulativeNet      decimal.Decimal `json:"cumulative"`
}

// Net is the change in exposure contributed by this bucket alone.
func (b Bucket) Net() decimal.Decimal {
	return b.LendingPrincipal.Sub(b.LendingPayments).
		Sub(b.BorrowingPrincipal.Sub(b.BorrowingPayments))
}

func newBucket(period time.Time) *Bucket {
	return &Bucket{
		Period:             period,
		LendingPrincipal:   decimal.Zero,
		BorrowingPrincipal: decimal.Zero,
		LendingPayments:    decimal.Zero,
		BorrowingPayments:  decimal.Zero,
		CumulativeNet:      decimal.Zero,
	}
}

// Aggregator turns obligations into an ordered bucket sequence. The zero
// value is not usable; build one with NewAggregator.
type Aggregator struct {
	weekStart  time.Weekday
	overrides  map[Granularity]Strategy
	strategies map[Granularity]Strategy
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithWeekStart sets the first day of a week bucket (Sunday by default).
func WithWeekStart(day time.Weekday) Option {
	return func(a *Aggregator) {
		a.weekStart = day
	}
}

// WithStrategy registers or replaces the strategy for a granularity.
func WithStrategy(g Granularity, s Strategy) Option {
	return func(a *Aggregator) {
		a.overrides[g] = s
	}
}

// NewAggregator creates an Aggregator with the built-in granularities plus
// any strategy registered through WithStrategy.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		weekStart: time.Sunday,
		overrides: map[Granularity]Strategy{},
	}
	for _, opt := range opts {
		opt(a)
	}

	a.strategies = defaultStrategies(a.weekStart)
	for g, s := range a.overrides {
		a.strategies[g] = s
	}
	return a
}

// Strategy returns the strategy used for g. Unknown granularities fall
// back to daily buckets.
func (a *Aggregator) Strategy(g Granularity) Strategy {
	if s, ok := a.strategies[g]; ok {
		return s
	}
	return a.strategies[Day]
}

// Aggregate buckets obligations over frame.
//
// Every grid period in the frame is emitted even when empty. Principal is
// booked in the bucket of the obligation's start instant when that instant
// is inside the frame; payments are booked in the bucket of their own
// instant when it is inside the frame, whatever the obligation's start.
// Buckets come back in ascending period order with CumulativeNet filled in.
// Instants are bucketed on the calendar of frame.Start's location. A frame
// whose start is after its end yields no buckets.
func (a *Aggregator) Aggregate(obligations []models.Obligation, frame Frame) []Bucket {
	strategy := a.Strategy(frame.Granularity)
	loc := frame.Start.Location()

	buckets := make(map[int64]*Bucket)
	bucketAt := func(period time.Time) *Bucket {
		k := period.UnixNano()
		b, ok := buckets[k]
		if !ok {
			b = newBucket(period)
			buckets[k] = b
		}
		return b
	}

	if !frame.Start.After(frame.End) {
		for p := strategy.Floor(frame.Start); !p.After(frame.End); p = strategy.Next(p) {
			bucketAt(p)
		}
	}

	for _, o := range obligations {
		if frame.Contains(o.StartDate) {
			b := bucketAt(strategy.Key(o.StartDate.In(loc)))
			if o.IsLending() {
				b.LendingPrincipal = b.LendingPrincipal.Add(o.Principal)
			} else {
				b.BorrowingPrincipal = b.BorrowingPrincipal.Add(o.Principal)
			}
		}

		for _, act := range o.Activities {
			if !act.IsPayment() || act.Amount == nil || !frame.Contains(act.CreatedAt) {
				continue
			}
			b := bucketAt(strategy.Key(act.CreatedAt.In(loc)))
			if o.IsLending() {
				b.LendingPayments = b.LendingPayments.Add(*act.Amount)
			} else {
				b.BorrowingPayments = b.BorrowingPayments.Add(*act.Amount)
			}
		}
	}

	ordered := make([]Bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, *b)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Period.Before(ordered[j].Period)
	})

	running := decimal.Zero
	for i := range ordered {
		running = running.Add(ordered[i].Net())
		ordered[i].CumulativeNet = running
	}

	return ordered
}

var defaultAggregator = NewAggregator()

// Aggregate runs the default aggregator (weeks start on Sunday).
func Aggregate(obligations []models.Obligation, frame Frame) []Bucket {
	return defaultAggregator.Aggregate(obligations, frame)
}
