package services

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

var (
	ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")
	ErrInvalidUsername        = errors.New("invalid username")
	ErrWeakPassword           = errors.New("weak password")
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{2,29}$`)

// NormalizeUsername lowercases and trims; it matches the unique index on lower(trim(username)).
func NormalizeUsername(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// ValidatePasswordStrength requires 8+ runes mixing upper case, lower case and digits.
func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < 8 {
		return ErrWeakPassword
	}

	var classes struct{ upper, lower, digit bool }
	for _, char := range password {
		classes.upper = classes.upper || unicode.IsUpper(char)
		classes.lower = classes.lower || unicode.IsLower(char)
		classes.digit = classes.digit || unicode.IsDigit(char)
	}
	if !classes.upper || !classes.lower || !classes.digit {
		return ErrWeakPassword
	}
	return nil
}
