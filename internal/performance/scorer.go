// Package performance scores how reliably counterparties repay what the
// user lent them.
package performance

import (
	"time"

	"fjacquet/lendtrack/internal/dateutils"
	"fjacquet/lendtrack/internal/models"

	"github.com/shopspring/decimal"
)

// Performance is the repayment record of one contact.
type Performance struct {
	Contact                 models.Contact  `json:"contact"`
	TotalLendingObligations int             `json:"total_lending_obligations"`
	Payments                int             `json:"payments"`
	OnTimePayments          int             `json:"on_time_payments"`
	AverageDelayDays        decimal.Decimal `json:"average_delay_days"`
}

// IsTimely reports whether the contact has no average delay at all.
func (p Performance) IsTimely() bool {
	return !p.AverageDelayDays.IsPositive()
}

// DueDate is the instant a payment settling months of interest was
// expected: the obligation start advanced by at least one calendar month.
func DueDate(start time.Time, months int) time.Time {
	if months < 1 {
		months = 1
	}
	return dateutils.AddMonths(start, months)
}

// Delay is the number of whole days a payment came after its due date.
// Zero or negative means the payment was on time.
func Delay(o models.Obligation, payment models.Activity) int {
	return dateutils.DaysBetween(DueDate(o.StartDate, payment.MonthsOrZero()), payment.CreatedAt)
}

// Score returns one Performance per contact, in the order of contacts.
// Only lending obligations count; every payment on them is compared to
// its due date, early payments score as on time and late ones add their
// delay to the average. A contact without payments averages zero.
func Score(contacts []models.Contact, obligations []models.Obligation) []Performance {
	byContact := make(map[string][]models.Obligation)
	for _, o := range obligations {
		if o.IsLending() {
			byContact[o.ContactID] = append(byContact[o.ContactID], o)
		}
	}

	scores := make([]Performance, 0, len(contacts))
	for _, c := range contacts {
		scores = append(scores, scoreContact(c, byContact[c.ID]))
	}
	return scores
}

func scoreContact(c models.Contact, lending []models.Obligation) Performance {
	p := Performance{
		Contact:                 c,
		TotalLendingObligations: len(lending),
		AverageDelayDays:        decimal.Zero,
	}

	totalDelay := 0
	for _, o := range lending {
		for _, act := range o.Payments() {
			p.Payments++
			if d := Delay(o, act); d <= 0 {
				p.OnTimePayments++
			} else {
				totalDelay += d
			}
		}
	}

	if p.Payments > 0 {
		p.AverageDelayDays = decimal.NewFromInt(int64(totalDelay)).
			Div(decimal.NewFromInt(int64(p.Payments)))
	}
	return p
}
