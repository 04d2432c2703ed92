// Package ledgererror defines the typed errors returned by the collaborators
// around the ledger engine (snapshot store, configuration, HTTP API).
package ledgererror

import "fmt"

// NotFoundError is returned when a referenced record does not exist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Kind, e.ID)
}

// ValidationError represents a rejected input value.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s='%s': %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StoreError represents a failure reading or writing the snapshot file.
type StoreError struct {
	FilePath string
	Op       string
	Err      error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed for %s: %v", e.Op, e.FilePath, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
