package logging

// Standardized field names for structured logging.
const (
	FieldFile         = "file_path"
	FieldObligationID = "obligation_id"
	FieldContactID    = "contact_id"
	FieldConvention   = "convention"
	FieldGranularity  = "granularity"
	FieldPreset       = "preset"
	FieldOperation    = "operation"
	FieldStatus       = "status"
	FieldCount        = "count"
	FieldDuration     = "duration_ms"
	FieldMethod       = "method"
	FieldPath         = "path"
	FieldAddress      = "address"
	FieldComponent    = "component"
)
