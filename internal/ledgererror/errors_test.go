package ledgererror

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Kind: "transaction", ID: "t42"}
	assert.Equal(t, "transaction 't42' not found", err.Error())
}

func TestValidationError(t *testing.T) {
	assert.Equal(t, "invalid granularity='hour': unknown granularity",
		(&ValidationError{Field: "granularity", Value: "hour", Reason: "unknown granularity"}).Error())
	assert.Equal(t, "invalid start: must not be after end",
		(&ValidationError{Field: "start", Reason: "must not be after end"}).Error())
}

func TestStoreError_Unwrap(t *testing.T) {
	err := fmt.Errorf("loading snapshot: %w", &StoreError{FilePath: "ledger.yaml", Op: "read", Err: os.ErrNotExist})

	var storeErr *StoreError
	assert.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "read", storeErr.Op)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "store read failed for ledger.yaml")
}
