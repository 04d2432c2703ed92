package interest

import (
	"time"

	"fjacquet/lendtrack/internal/dateutils"
	"fjacquet/lendtrack/internal/models"

	"github.com/shopspring/decimal"
)

// Accrue returns the interest owed on o from its start instant up to asOf,
// with months and days derived from the calendar.
//
// No clamping happens here: an asOf before the start yields negative
// elapsed time and therefore negative interest.
func Accrue(o models.Obligation, conv models.Convention, asOf time.Time) decimal.Decimal {
	elapsed := Elapsed{
		Days:   dateutils.DaysBetween(o.StartDate, asOf),
		Months: dateutils.MonthsBetween(o.StartDate, asOf),
	}
	return CalculatorFor(conv).Calculate(o.Principal, o.InterestRate, elapsed)
}

// AccrueMonths returns the interest owed on o for an explicit number of
// months. asOf only feeds the elapsed day count, which the explicit-month
// formulas ignore. A negative months value is passed through as is.
func AccrueMonths(o models.Obligation, conv models.Convention, asOf time.Time, months int) decimal.Decimal {
	elapsed := Elapsed{
		Days:     dateutils.DaysBetween(o.StartDate, asOf),
		Months:   months,
		Explicit: true,
	}
	return CalculatorFor(conv).Calculate(o.Principal, o.InterestRate, elapsed)
}
