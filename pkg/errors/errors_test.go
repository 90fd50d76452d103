package errors

import (
	"database/sql"
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneKeepsIdentity(t *testing.T) {
	err := Clone(ErrConflict, "This class already exists!")
	assert.Equal(t, "This class already exists!", err.Message)
	assert.Equal(t, http.StatusConflict, err.Status)
	assert.True(t, stdErrors.Is(err, ErrConflict))
	assert.False(t, stdErrors.Is(err, ErrNotFound))
	assert.Equal(t, "conflict", ErrConflict.Message)
}

func TestStorageAppendsUnderlyingText(t *testing.T) {
	err := Storage(fmt.Errorf("dial tcp: refused"), "Failed to load data")
	assert.Equal(t, "Failed to load data: dial tcp: refused", err.Message)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.True(t, stdErrors.Is(err, ErrInternal))
}

func TestFromErrorWrapsUnknown(t *testing.T) {
	err := FromError(sql.ErrConnDone)
	assert.Equal(t, ErrInternal.Code, err.Code)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.Nil(t, FromError(nil))
}

func TestInvalidCarriesField(t *testing.T) {
	err := Invalid("phone", "Phone number must contain at least 10 digits.")
	assert.Equal(t, "phone", err.Field)
	assert.Equal(t, http.StatusBadRequest, err.Status)
}
