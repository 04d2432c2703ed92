package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActivityType distinguishes payments from free-text comments.
type ActivityType string

const (
	ActivityPayment ActivityType = "payment"
	ActivityComment ActivityType = "comment"
)

// Activity is an event recorded against an obligation. Payments carry an
// amount and optionally the number of interest months they settle; comments
// carry text only. Absent numeric fields count as zero.
type Activity struct {
	ID                string           `json:"id" yaml:"id"`
	Type              ActivityType     `json:"type" yaml:"type"`
	Content           string           `json:"content,omitempty" yaml:"content,omitempty"`
	Amount            *decimal.Decimal `json:"amount,omitempty" yaml:"amount,omitempty"`
	InterestMonths    *int             `json:"interest_months,omitempty" yaml:"interest_months,omitempty"`
	IncludedPrincipal bool             `json:"included_principal,omitempty" yaml:"included_principal,omitempty"`
	CreatedAt         time.Time        `json:"created_at" yaml:"created_at"`
}

// IsPayment reports whether the activity is a payment.
func (a Activity) IsPayment() bool {
	return a.Type == ActivityPayment
}

// AmountOrZero returns the payment amount, or zero when none was recorded.
func (a Activity) AmountOrZero() decimal.Decimal {
	if a.Amount == nil {
		return decimal.Zero
	}
	return *a.Amount
}

// MonthsOrZero returns the settled interest months, or zero when unset.
func (a Activity) MonthsOrZero() int {
	if a.InterestMonths == nil {
		return 0
	}
	return *a.InterestMonths
}

// NewPayment builds a payment activity. months may be nil.
func NewPayment(id string, at time.Time, amount decimal.Decimal, months *int, includedPrincipal bool) Activity {
	return Activity{
		ID:                id,
		Type:              ActivityPayment,
		Amount:            &amount,
		InterestMonths:    months,
		IncludedPrincipal: includedPrincipal,
		CreatedAt:         at,
	}
}

// NewComment builds a comment activity.
func NewComment(id string, at time.Time, content string) Activity {
	return Activity{
		ID:        id,
		Type:      ActivityComment,
		Content:   content,
		CreatedAt: at,
	}
}
