// Package interest converts rates between conventions and computes the
// interest accrued on a single obligation.
//
// Each convention is a Calculator registered in a lookup table; the
// functions in this package pick the calculator and feed it the elapsed
// time measured on the obligation's calendar.
package interest

import (
	"fjacquet/lendtrack/internal/models"

	"github.com/shopspring/decimal"
)

var (
	twelve        = decimal.NewFromInt(12)
	hundred       = decimal.NewFromInt(100)
	daysPerYear   = decimal.NewFromInt(365)
	monthsHundred = hundred.Mul(twelve)
	daysHundred   = hundred.Mul(daysPerYear)
)

// Elapsed is the time an obligation has been running, as seen by a
// calculator. Months is either caller-provided (Explicit) or derived from
// the calendar; Days is always derived from the calendar.
type Elapsed struct {
	Days     int
	Months   int
	Explicit bool
}

// Calculator computes interest for one convention.
type Calculator interface {
	Convention() models.Convention
	Calculate(principal, rate decimal.Decimal, elapsed Elapsed) decimal.Decimal
}

// PercentageCalculator reads the rate as an annual percentage.
//
// With an explicit month count it charges the monthly equivalent
// (rate/12/100) per month. Without one it pro-rates the annual rate over
// elapsed days on a 365-day year. The two branches intentionally disagree
// for the same calendar span.
type PercentageCalculator struct{}

// Convention implements Calculator.
func (PercentageCalculator) Convention() models.Convention {
	return models.ConventionPercentage
}

// Calculate implements Calculator.
func (PercentageCalculator) Calculate(principal, rate decimal.Decimal, elapsed Elapsed) decimal.Decimal {
	if elapsed.Explicit {
		return principal.Mul(rate).Mul(decimal.NewFromInt(int64(elapsed.Months))).Div(monthsHundred)
	}
	return principal.Mul(rate).Mul(decimal.NewFromInt(int64(elapsed.Days))).Div(daysHundred)
}

// PerHundredCalculator reads the rate as currency units owed per 100 units
// of principal per month. Explicit and derived months are treated alike.
type PerHundredCalculator struct{}

// Convention implements Calculator.
func (PerHundredCalculator) Convention() models.Convention {
	return models.ConventionPerHundred
}

// Calculate implements Calculator.
func (PerHundredCalculator) Calculate(principal, rate decimal.Decimal, elapsed Elapsed) decimal.Decimal {
	return principal.Div(hundred).Mul(rate).Mul(decimal.NewFromInt(int64(elapsed.Months)))
}

var (
	_ Calculator = PercentageCalculator{}
	_ Calculator = PerHundredCalculator{}
)

var calculators = map[models.Convention]Calculator{
	models.ConventionPercentage: PercentageCalculator{},
	models.ConventionPerHundred: PerHundredCalculator{},
}

// CalculatorFor returns the calculator registered for conv. Anything that is
// not the percentage convention is computed per hundred per month.
func CalculatorFor(conv models.Convention) Calculator {
	if c, ok := calculators[conv]; ok {
		return c
	}
	return PerHundredCalculator{}
}
