package auth

import (
	"regexp"
	"strings"
	"unicode"

	apperrors "github.com/Felipeysz/teste/internal/errors"
)

// emailPattern accepts a single @ with a dot somewhere in the domain part.
// Deliverability is the mail server's problem, not ours.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// namePattern accepts letters (including accented) and spaces.
var namePattern = regexp.MustCompile(`^[\p{L} ]+$`)

// ValidateEmailFormat checks the basic shape of an email address.
func ValidateEmailFormat(email string) error {
	if !emailPattern.MatchString(email) {
		return apperrors.ValidationError("invalid email format").WithField("field", "email")
	}
	return nil
}

// ValidateNameFormat checks that a display name contains only letters and spaces.
func ValidateNameFormat(name string) error {
	if strings.TrimSpace(name) == "" || !namePattern.MatchString(name) {
		return apperrors.ValidationError("name must contain only letters and spaces").WithField("field", "name")
	}
	return nil
}

// ValidateRegisterRequired checks the mandatory registration fields.
func ValidateRegisterRequired(name, email, password string) error {
	return requireFields(map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

// ValidateLoginRequired checks the mandatory login fields.
func ValidateLoginRequired(email, password string) error {
	return requireFields(map[string]string{
		"email":    email,
		"password": password,
	})
}

// ValidateUpdateRequired checks the mandatory update fields.
// Password is not in the set: updates only rehash when a new one is supplied.
func ValidateUpdateRequired(name, email, role string) error {
	return requireFields(map[string]string{
		"name":  name,
		"email": email,
		"role":  role,
	})
}

// ValidatePasswordComplexity enforces minimum password strength:
// at least 8 characters, one uppercase letter, and one digit.
func ValidatePasswordComplexity(password string) error {
	if len(password) < 8 || !containsFunc(password, unicode.IsUpper) || !containsFunc(password, unicode.IsDigit) {
		return apperrors.ValidationError("password must be at least 8 characters and include an uppercase letter and a digit").
			WithField("field", "password")
	}
	return nil
}

func requireFields(fields map[string]string) error {
	// Deterministic order so error messages are stable.
	for _, name := range []string{"name", "email", "password", "role"} {
		value, ok := fields[name]
		if !ok {
			continue
		}
		if strings.TrimSpace(value) == "" {
			return apperrors.ValidationError(name + " is required").WithField("field", name)
		}
	}
	return nil
}

func containsFunc(s string, fn func(rune) bool) bool {
	for _, r := range s {
		if fn(r) {
			return true
		}
	}
	return false
}
