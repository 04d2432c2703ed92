package interest

import (
	"fmt"

	"fjacquet/lendtrack/internal/models"

	"github.com/shopspring/decimal"
)

// ConvertRate translates a stored rate from one convention to the other by
// linear month/year scaling, rounded to 2 decimals. The rounding makes the
// conversion lossy: 25% -> 2.08 per 100 -> 24.96%.
func ConvertRate(rate decimal.Decimal, from, to models.Convention) decimal.Decimal {
	if from == to {
		return rate
	}
	if from == models.ConventionPercentage && to == models.ConventionPerHundred {
		return rate.Div(twelve).Round(2)
	}
	return rate.Mul(twelve).Round(2)
}

// FormatRate renders a rate with its unit for the given convention.
func FormatRate(rate decimal.Decimal, conv models.Convention) string {
	if conv == models.ConventionPercentage {
		return fmt.Sprintf("%s%% per year", rate.String())
	}
	return fmt.Sprintf("%s per 100 per month", rate.String())
}
