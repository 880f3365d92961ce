package auth

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// conventional local-part@domain pattern, with a 2+ letter top level segment
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

var (
	ErrPasswordLength = errors.New("passwords must count at least 8 characters")
	ErrPasswordDigit  = errors.New("passwords must include at least one digit")
	ErrPasswordLetter = errors.New("passwords must include at least one letter")
)

// ValidEmail reports whether the trimmed address matches a conventional email pattern.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// NormaliseEmail trims surrounding whitespace and lowercases the address,
// so that equality and the unique constraint operate on a canonical form.
func NormaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidatePassword checks the password strength policy and returns the first violated
// rule: minimum length, then the digit requirement, then the letter requirement.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordLength
	}

	var hasDigit, hasLetter bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLetter(r):
			hasLetter = true
		}
	}

	if !hasDigit {
		return ErrPasswordDigit
	}
	if !hasLetter {
		return ErrPasswordLetter
	}
	return nil
}
