package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fjacquet/lendtrack/internal/interest"
	"fjacquet/lendtrack/internal/ledgererror"
	"fjacquet/lendtrack/internal/models"

	"github.com/google/uuid"
)

// Settings holds the user preferences persisted with the data.
type Settings struct {
	InterestCalculation models.Convention `json:"interest_calculation" yaml:"interest_calculation"`
}

// Snapshot is the full persisted state: settings, contacts and the
// obligations (called transactions on disk) with their activities.
type Snapshot struct {
	Settings     Settings            `json:"settings" yaml:"settings"`
	Contacts     []models.Contact    `json:"contacts" yaml:"contacts"`
	Transactions []models.Obligation `json:"transactions" yaml:"transactions"`
}

// Convention returns the stored interest convention, or fallback when the
// snapshot does not record one.
func (s *Snapshot) Convention(fallback models.Convention) models.Convention {
	if s.Settings.InterestCalculation == "" {
		return fallback
	}
	return s.Settings.InterestCalculation
}

// Contact looks a contact up by id, disabled ones included.
func (s *Snapshot) Contact(id string) (models.Contact, error) {
	if c, ok := models.FindContact(s.Contacts, id); ok {
		return c, nil
	}
	return models.Contact{}, &ledgererror.NotFoundError{Kind: "contact", ID: id}
}

// Obligation looks an obligation up by id.
func (s *Snapshot) Obligation(id string) (models.Obligation, error) {
	if o, ok := models.FindObligation(s.Transactions, id); ok {
		return o, nil
	}
	return models.Obligation{}, &ledgererror.NotFoundError{Kind: "transaction", ID: id}
}

// derivedID names a record that has no id. The id depends only on the
// record's position and content, so every load of the same file yields
// the same id.
func derivedID(parts ...string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.Join(parts, "\x00"))).String()
}

// normalize fills in ids and currencies missing from hand-written files
// and rejects records that break the data model.
func (s *Snapshot) normalize() error {
	if s.Settings.InterestCalculation != "" {
		conv, err := models.ParseConvention(string(s.Settings.InterestCalculation))
		if err != nil {
			return &ledgererror.ValidationError{
				Field: "settings.interest_calculation", Value: string(s.Settings.InterestCalculation), Reason: err.Error(),
			}
		}
		s.Settings.InterestCalculation = conv
	}

	for i := range s.Contacts {
		if s.Contacts[i].ID == "" {
			s.Contacts[i].ID = derivedID("contact", strconv.Itoa(i), s.Contacts[i].Name)
		}
	}

	for i := range s.Transactions {
		o := &s.Transactions[i]
		if o.ID == "" {
			o.ID = derivedID("transaction", strconv.Itoa(i), o.ContactID,
				o.StartDate.UTC().Format(time.RFC3339Nano), o.Principal.String())
		}
		if o.Currency == "" {
			o.Currency = models.DefaultCurrency
		}
		if o.Status == "" {
			o.Status = models.StatusActive
		}

		dir, err := models.ParseDirection(string(o.Direction))
		if err != nil {
			return &ledgererror.ValidationError{Field: fmt.Sprintf("transactions[%s].type", o.ID), Value: string(o.Direction), Reason: err.Error()}
		}
		o.Direction = dir

		if o.Principal.IsNegative() {
			return &ledgererror.ValidationError{Field: fmt.Sprintf("transactions[%s].amount", o.ID), Value: o.Principal.String(), Reason: "must not be negative"}
		}
		if o.InterestRate.IsNegative() {
			return &ledgererror.ValidationError{Field: fmt.Sprintf("transactions[%s].interest_rate", o.ID), Value: o.InterestRate.String(), Reason: "must not be negative"}
		}

		for j := range o.Activities {
			a := &o.Activities[j]
			if a.ID == "" {
				a.ID = derivedID(o.ID, "activity", strconv.Itoa(j), a.CreatedAt.UTC().Format(time.RFC3339Nano))
			}
			if a.Type != models.ActivityPayment && a.Type != models.ActivityComment {
				return &ledgererror.ValidationError{Field: fmt.Sprintf("transactions[%s].activities[%s].type", o.ID, a.ID), Value: string(a.Type), Reason: "must be payment or comment"}
			}
		}
	}
	return nil
}

// SwitchConvention returns a copy of the snapshot whose settings record
// the convention to and whose obligation rates were converted from the
// current convention. The conversion rounds to two decimals, so switching
// back and forth may drift. The input snapshot is left untouched.
func SwitchConvention(s Snapshot, to models.Convention) (Snapshot, error) {
	if !to.IsValid() {
		return s, &ledgererror.ValidationError{Field: "convention", Value: string(to), Reason: "unknown interest convention"}
	}

	from := s.Convention(models.DefaultConvention)
	out := s
	out.Settings.InterestCalculation = to
	out.Transactions = make([]models.Obligation, len(s.Transactions))
	copy(out.Transactions, s.Transactions)

	if from == to {
		return out, nil
	}
	for i := range out.Transactions {
		out.Transactions[i].InterestRate = interest.ConvertRate(out.Transactions[i].InterestRate, from, to)
	}
	return out, nil
}
