package utils

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// ErrEmptyWord is returned for blank input.
	ErrEmptyWord = errors.New("empty word")
	// ErrWordTooLong is returned for input over the configured length.
	ErrWordTooLong = errors.New("word too long")
	// ErrInvalidWord is returned for input that cannot be a dictionary word.
	ErrInvalidWord = errors.New("invalid word")
)

// ValidateWord checks input before it reaches a lookup or a suggestion
// search. maxLen counts runes; zero disables the length check.
func ValidateWord(s string, maxLen int) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmptyWord
	}
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: not valid UTF-8", ErrInvalidWord)
	}
	if n := utf8.RuneCountInString(s); maxLen > 0 && n > maxLen {
		return fmt.Errorf("%w: %d > %d", ErrWordTooLong, n, maxLen)
	}
	if ContainsControl(s) {
		return fmt.Errorf("%w: contains control characters", ErrInvalidWord)
	}
	return nil
}

// IsValidInput reports whether ValidateWord accepts s.
func IsValidInput(s string, maxLen int) bool {
	return ValidateWord(s, maxLen) == nil
}

// ContainsControl reports whether s holds a control character, newlines and
// tabs included.
func ContainsControl(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

// IsOnlyNumbers checks if a string consists entirely of numeric digits
func IsOnlyNumbers(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// SplitInput breaks a REPL or command line into words on whitespace.
func SplitInput(s string) []string {
	return strings.Fields(s)
}
