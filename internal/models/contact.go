package models

// UnknownContactName stands in for a contact id that resolves to nothing.
const UnknownContactName = "Unknown Contact"

// Contact is a counterparty. Disabled contacts stay valid as historical
// references but cannot be picked for new obligations.
type Contact struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Phone      string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Address    string `json:"address,omitempty" yaml:"address,omitempty"`
	ReferralID string `json:"referral_id,omitempty" yaml:"referral_id,omitempty"`
	Disabled   bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// EligibleContacts returns the contacts that may be used for a new
// obligation, preserving input order.
func EligibleContacts(contacts []Contact) []Contact {
	eligible := make([]Contact, 0, len(contacts))
	for _, c := range contacts {
		if !c.Disabled {
			eligible = append(eligible, c)
		}
	}
	return eligible
}

// FindContact resolves a contact by id, disabled or not.
func FindContact(contacts []Contact, id string) (Contact, bool) {
	for _, c := range contacts {
		if c.ID == id {
			return c, true
		}
	}
	return Contact{}, false
}

// ContactName resolves the display name of a contact id.
func ContactName(contacts []Contact, id string) string {
	if c, ok := FindContact(contacts, id); ok {
		return c.Name
	}
	return UnknownContactName
}
