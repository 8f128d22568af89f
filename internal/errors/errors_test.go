package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := ValidationError("invalid input")

	assert.Equal(t, TypeValidation, err.Type)
	assert.Equal(t, "invalid input", err.Message)
	assert.Nil(t, err.Cause)
	assert.NotNil(t, err.Context)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus())
	assert.Contains(t, err.Error(), "validation")
	assert.Contains(t, err.Error(), "invalid input")
}

func TestUnauthorizedError(t *testing.T) {
	err := UnauthorizedError("invalid credentials")

	assert.Equal(t, TypeUnauthorized, err.Type)
	assert.Equal(t, "invalid credentials", err.Message)
	assert.Equal(t, http.StatusUnauthorized, err.HTTPStatus())
	assert.Contains(t, err.Error(), "unauthorized")
}

func TestNotFoundError(t *testing.T) {
	err := NotFoundError("account not found")

	assert.Equal(t, TypeNotFound, err.Type)
	assert.Equal(t, "account not found", err.Message)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus())
	assert.Contains(t, err.Error(), "not_found")
}

func TestConflictError(t *testing.T) {
	err := ConflictError("resource already exists")

	assert.Equal(t, TypeConflict, err.Type)
	assert.Equal(t, http.StatusConflict, err.HTTPStatus())
	assert.Contains(t, err.Error(), "conflict")
}

func TestInternalError(t *testing.T) {
	cause := fmt.Errorf("database connection failed")
	err := InternalError("failed to save account", cause)

	assert.Equal(t, TypeInternal, err.Type)
	assert.Equal(t, cause, err.Cause)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
	assert.Contains(t, err.Error(), "internal")
	assert.Contains(t, err.Error(), "database connection failed")
}

func TestInternalErrorWithoutCause(t *testing.T) {
	err := InternalError("something went wrong", nil)

	assert.Equal(t, TypeInternal, err.Type)
	assert.Nil(t, err.Cause)
	assert.NotContains(t, err.Error(), "<nil>")
}

func TestWithContextChaining(t *testing.T) {
	err := ValidationError("invalid input").
		WithContext("field", "email").
		WithContext("value", "")

	assert.Len(t, err.Context, 2)
	assert.Equal(t, "email", err.Context["field"])
	assert.Equal(t, "", err.Context["value"])
}

func TestWithContextNilMap(t *testing.T) {
	err := &Error{
		Type:    TypeValidation,
		Message: "test",
		Context: nil,
	}

	err = err.WithContext("key", "value")

	assert.NotNil(t, err.Context)
	assert.Equal(t, "value", err.Context["key"])
}

func TestToResponse(t *testing.T) {
	err := ConflictError("email already in use").
		WithContext("field", "email")

	resp := err.ToResponse()

	assert.Equal(t, "email already in use", resp.Error)
	assert.Equal(t, TypeConflict, resp.Type)
	assert.Equal(t, "email", resp.Context["field"])
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := InternalError("wrapped", cause)

	unwrapped := errors.Unwrap(err)
	assert.Equal(t, cause, unwrapped)
}

func TestAsStructuredErrorPassthrough(t *testing.T) {
	original := NotFoundError("account not found")
	converted := AsStructuredError(original)

	assert.Same(t, original, converted)
}

func TestAsStructuredErrorWrapsPlainError(t *testing.T) {
	plain := fmt.Errorf("boom")
	converted := AsStructuredError(plain)

	assert.Equal(t, TypeInternal, converted.Type)
	assert.Equal(t, plain, converted.Cause)
}

func TestAsStructuredErrorNil(t *testing.T) {
	assert.Nil(t, AsStructuredError(nil))
}
