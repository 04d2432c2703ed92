package models

// Default values used when a snapshot or configuration leaves them unset
const (
	DefaultCurrency   = "INR"
	DefaultConvention = ConventionPercentage
)

// File permissions
const (
	PermissionDataFile  = 0600
	PermissionDirectory = 0750
)
