package utils

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// Mode slugs and display names: letters, digits, spaces, hyphens.
	validIDPattern = regexp.MustCompile(`^[a-zA-Z0-9 _-]+$`)

	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

const (
	MinYear = 1900
	MaxYear = 2200
)

// ValidateID validates that an identifier from the URL is safe and within reasonable limits
func ValidateID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}

	if len(id) > 64 {
		return errors.New("id too long (max 64 characters)")
	}

	if !validIDPattern.MatchString(id) {
		return errors.New("id contains invalid characters")
	}

	return nil
}

// ValidateYear rejects years no ridership table could contain.
func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return errors.New("year must be between 1900 and 2200")
	}
	return nil
}

// SanitizeInput removes HTML tags and surrounding whitespace
func SanitizeInput(input string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(input, ""))
}
