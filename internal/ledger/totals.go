// Package ledger combines principal, accrued interest and recorded payments
// into the balance figures shown for one obligation.
package ledger

import (
	"time"

	"fjacquet/lendtrack/internal/dateutils"
	"fjacquet/lendtrack/internal/interest"
	"fjacquet/lendtrack/internal/models"

	"github.com/shopspring/decimal"
)

// Breakdown is the full balance of one obligation at a point in time.
// Remaining goes negative when the obligation has been overpaid.
type Breakdown struct {
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Total     decimal.Decimal `json:"total"`
	Paid      decimal.Decimal `json:"paid"`
	Remaining decimal.Decimal `json:"remaining"`
}

// Totals computes the balance of o as of now. Interest is the day-pro-rated
// figure over the whole period (no explicit month count).
func Totals(o models.Obligation, conv models.Convention, now time.Time) Breakdown {
	accrued := interest.Accrue(o, conv, now)
	paid := PaidAmount(o)
	total := o.Principal.Add(accrued)

	return Breakdown{
		Principal: o.Principal,
		Interest:  accrued,
		Total:     total,
		Paid:      paid,
		Remaining: total.Sub(paid),
	}
}

// PaidAmount sums the amounts of all payment activities.
func PaidAmount(o models.Obligation) decimal.Decimal {
	paid := decimal.Zero
	for _, a := range o.Activities {
		if a.IsPayment() {
			paid = paid.Add(a.AmountOrZero())
		}
	}
	return paid
}

// PaidMonths sums the interest months settled by payment activities.
func PaidMonths(o models.Obligation) int {
	months := 0
	for _, a := range o.Activities {
		if a.IsPayment() {
			months += a.MonthsOrZero()
		}
	}
	return months
}

// PendingMonths is the number of whole months since the start that no
// payment has settled yet, never below zero.
func PendingMonths(o models.Obligation, now time.Time) int {
	pending := dateutils.MonthsBetween(o.StartDate, now) - PaidMonths(o)
	if pending < 0 {
		return 0
	}
	return pending
}

// PendingInterest is the interest owed for the pending months. It goes
// through the explicit-month formula, so under the percentage convention it
// differs from Totals(...).Interest even when nothing has been paid.
func PendingInterest(o models.Obligation, conv models.Convention, now time.Time) decimal.Decimal {
	return interest.AccrueMonths(o, conv, now, PendingMonths(o, now))
}

// Pending bundles the pending-month figures for one obligation.
type Pending struct {
	Months   int             `json:"pending_months"`
	Interest decimal.Decimal `json:"pending_interest"`
}

// PendingFor computes both pending figures at once.
func PendingFor(o models.Obligation, conv models.Convention, now time.Time) Pending {
	months := PendingMonths(o, now)
	return Pending{
		Months:   months,
		Interest: interest.AccrueMonths(o, conv, now, months),
	}
}
