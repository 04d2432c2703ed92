package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction tells whether the user lent or borrowed the principal.
type Direction string

const (
	DirectionLending   Direction = "lending"
	DirectionBorrowing Direction = "borrowing"
)

// ParseDirection parses "lending" or "borrowing".
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case DirectionLending, DirectionBorrowing:
		return d, nil
	default:
		return "", fmt.Errorf("unknown direction %q", s)
	}
}

// Status is the lifecycle state of an obligation.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
)

// Obligation is a lending or borrowing agreement with one counterparty. It
// exclusively owns its activities; activities never point back to it.
type Obligation struct {
	ID           string          `json:"id" yaml:"id"`
	Direction    Direction       `json:"type" yaml:"type"`
	Principal    decimal.Decimal `json:"amount" yaml:"amount"`
	Currency     string          `json:"currency" yaml:"currency"`
	ContactID    string          `json:"contact_id" yaml:"contact_id"`
	InterestRate decimal.Decimal `json:"interest_rate" yaml:"interest_rate"`
	StartDate    time.Time       `json:"start_date" yaml:"start_date"`
	Status       Status          `json:"status" yaml:"status"`
	Notes        string          `json:"notes,omitempty" yaml:"notes,omitempty"`
	Activities   []Activity      `json:"activities,omitempty" yaml:"activities,omitempty"`
}

// IsLending reports whether the user is the lender.
func (o Obligation) IsLending() bool {
	return o.Direction == DirectionLending
}

// IsOpen reports whether the obligation still counts as outstanding.
func (o Obligation) IsOpen() bool {
	return o.Status != StatusCompleted
}

// Payments returns the payment activities in stored order.
func (o Obligation) Payments() []Activity {
	var payments []Activity
	for _, a := range o.Activities {
		if a.IsPayment() {
			payments = append(payments, a)
		}
	}
	return payments
}

// ActivitiesByRecency returns a copy of the activities ordered by creation
// instant, newest first. The obligation itself is left untouched.
func (o Obligation) ActivitiesByRecency() []Activity {
	sorted := make([]Activity, len(o.Activities))
	copy(sorted, o.Activities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return sorted
}

// FindObligation returns the obligation with the given id.
func FindObligation(obligations []Obligation, id string) (Obligation, bool) {
	for _, o := range obligations {
		if o.ID == id {
			return o, true
		}
	}
	return Obligation{}, false
}
