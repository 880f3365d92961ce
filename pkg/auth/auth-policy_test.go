package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		expected error
	}{
		{"short1", ErrPasswordLength},   // 7 characters, one digit
		{"abcdefgh", ErrPasswordDigit},  // 8 letters, no digit
		{"12345678", ErrPasswordLetter}, // 8 digits, no letter
		{"abcdef12", nil},
		{"", ErrPasswordLength},
		{"1a", ErrPasswordLength},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, ValidatePassword(tc.password), "password %q", tc.password)
	}
}

func TestValidatePassword_ReportsLengthBeforeContents(t *testing.T) {
	// a short password missing both a digit and a letter fails on length first
	assert.Equal(t, ErrPasswordLength, ValidatePassword("!!!"))
}

func TestValidEmail(t *testing.T) {
	valid := []string{
		"abc@example.com",
		"a.b_c%d+e-f@sub.example.co",
		"  padded@example.com  ", // trimmed before matching
		"UPPER@EXAMPLE.COM",
	}
	for _, email := range valid {
		assert.True(t, ValidEmail(email), "email %q", email)
	}

	invalid := []string{
		"",
		"plain",
		"missing@dot",
		"@example.com",
		"user@.com",
		"user@example.c", // single letter top level segment
		"user name@example.com",
	}
	for _, email := range invalid {
		assert.False(t, ValidEmail(email), "email %q", email)
	}
}

func TestNormaliseEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", NormaliseEmail(" A@B.com "))
	assert.Equal(t, "already@lower.com", NormaliseEmail("already@lower.com"))
}
