package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Felipeysz/teste/internal/errors"
)

func assertValidationError(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	var structured *apperrors.Error
	require.ErrorAs(t, err, &structured)
	assert.Equal(t, apperrors.TypeValidation, structured.Type)
	assert.Equal(t, field, structured.Context["field"])
}

func TestValidateEmailFormat(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "ana@example.com", false},
		{"valid with subdomain", "ana@mail.example.com", false},
		{"missing at", "ana.example.com", true},
		{"two ats", "ana@@example.com", true},
		{"no dot in domain", "ana@example", true},
		{"whitespace", "ana @example.com", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmailFormat(tt.email)
			if tt.wantErr {
				assertValidationError(t, err, "email")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateNameFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Ana", false},
		{"with space", "Ana Souza", false},
		{"accented", "João Conceição", false},
		{"digits", "Ana2", true},
		{"symbols", "Ana!", true},
		{"empty", "", true},
		{"whitespace only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNameFormat(tt.input)
			if tt.wantErr {
				assertValidationError(t, err, "name")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRegisterRequired(t *testing.T) {
	assert.NoError(t, ValidateRegisterRequired("Ana", "ana@x.com", "Secret1x"))

	assertValidationError(t, ValidateRegisterRequired("", "ana@x.com", "Secret1x"), "name")
	assertValidationError(t, ValidateRegisterRequired("Ana", "", "Secret1x"), "email")
	assertValidationError(t, ValidateRegisterRequired("Ana", "ana@x.com", ""), "password")
	assertValidationError(t, ValidateRegisterRequired("Ana", "ana@x.com", "   "), "password")
}

func TestValidateLoginRequired(t *testing.T) {
	assert.NoError(t, ValidateLoginRequired("ana@x.com", "Secret1x"))

	assertValidationError(t, ValidateLoginRequired("", "Secret1x"), "email")
	assertValidationError(t, ValidateLoginRequired("ana@x.com", ""), "password")
}

func TestValidateUpdateRequired(t *testing.T) {
	assert.NoError(t, ValidateUpdateRequired("Ana", "ana@x.com", "user"))

	assertValidationError(t, ValidateUpdateRequired("", "ana@x.com", "user"), "name")
	assertValidationError(t, ValidateUpdateRequired("Ana", "", "user"), "email")
	assertValidationError(t, ValidateUpdateRequired("Ana", "ana@x.com", ""), "role")
}

func TestValidatePasswordComplexity(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Secret1x", false},
		{"long mixed", "Sup3rSecretPassword", false},
		{"too short", "Se1x", true},
		{"no uppercase", "secret1x", true},
		{"no digit", "Secretxx", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePasswordComplexity(tt.password)
			if tt.wantErr {
				assertValidationError(t, err, "password")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
