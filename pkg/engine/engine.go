// Package engine is the in-process entry point to the lending ledger
// computations: rate conversion, interest accrual, obligation totals,
// time-series aggregation and contact performance scoring.
//
// Every function is pure. The current instant and the interest convention
// are always passed in explicitly.
package engine

import (
	"time"

	"fjacquet/lendtrack/internal/interest"
	"fjacquet/lendtrack/internal/ledger"
	"fjacquet/lendtrack/internal/models"
	"fjacquet/lendtrack/internal/performance"
	"fjacquet/lendtrack/internal/timeseries"

	"github.com/shopspring/decimal"
)

type (
	Obligation  = models.Obligation
	Activity    = models.Activity
	Contact     = models.Contact
	Convention  = models.Convention
	Breakdown   = ledger.Breakdown
	Pending     = ledger.Pending
	Frame       = timeseries.Frame
	Bucket      = timeseries.Bucket
	Granularity = timeseries.Granularity
	Performance = performance.Performance
)

const (
	Percentage = models.ConventionPercentage
	PerHundred = models.ConventionPerHundred

	Day   = timeseries.Day
	Week  = timeseries.Week
	Month = timeseries.Month
	Year  = timeseries.Year
)

// ConvertRate rescales a rate from one convention to the other, rounded
// to two decimals.
func ConvertRate(rate decimal.Decimal, from, to Convention) decimal.Decimal {
	return interest.ConvertRate(rate, from, to)
}

// Accrue returns the interest of o as of asOf. With explicitMonths nil the
// elapsed time is measured from the obligation start; otherwise the given
// month count is used as is, even when negative.
func Accrue(o Obligation, conv Convention, asOf time.Time, explicitMonths *int) decimal.Decimal {
	if explicitMonths != nil {
		return interest.AccrueMonths(o, conv, asOf, *explicitMonths)
	}
	return interest.Accrue(o, conv, asOf)
}

// Totals returns principal, interest, total, paid and remaining for o.
func Totals(o Obligation, conv Convention, now time.Time) Breakdown {
	return ledger.Totals(o, conv, now)
}

// PendingFor returns the months of interest not yet settled and what they
// amount to.
func PendingFor(o Obligation, conv Convention, now time.Time) Pending {
	return ledger.PendingFor(o, conv, now)
}

// Aggregate buckets obligations over frame with weeks starting on Sunday.
func Aggregate(obligations []Obligation, frame Frame) []Bucket {
	return timeseries.Aggregate(obligations, frame)
}

// Score rates how punctually each contact repays.
func Score(contacts []Contact, obligations []Obligation) []Performance {
	return performance.Score(contacts, obligations)
}
