package models

import (
	"fmt"
	"strings"
)

// Convention is the formula family used to compute interest on every
// obligation. It is a process-wide setting held by the caller and passed
// explicitly into each computation.
type Convention string

const (
	// ConventionPercentage reads rates as an annual percentage.
	ConventionPercentage Convention = "percentage"
	// ConventionPerHundred reads rates as currency units owed per 100 units
	// of principal per elapsed month.
	ConventionPerHundred Convention = "per100"
)

// KnownConventions lists the supported conventions in display order.
var KnownConventions = []Convention{
	ConventionPercentage,
	ConventionPerHundred,
}

// ParseConvention accepts the stored names plus a few spelled-out aliases.
func ParseConvention(s string) (Convention, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "percentage", "percent", "annual":
		return ConventionPercentage, nil
	case "per100", "per-100", "per-hundred", "per-hundred-per-month":
		return ConventionPerHundred, nil
	default:
		return "", fmt.Errorf("unknown interest convention %q", s)
	}
}

// IsValid reports whether c is one of KnownConventions.
func (c Convention) IsValid() bool {
	for _, known := range KnownConventions {
		if c == known {
			return true
		}
	}
	return false
}

func (c Convention) String() string {
	return string(c)
}
