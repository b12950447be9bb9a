package utils

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/transitstats/mta-ridership/internal/ridership"
)

// FieldErrors collects validation messages per request field, rendered as {"fieldErrors": ...}.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

func invalidField(key string) string {
	return fmt.Sprintf("Invalid field value for field %q.", key)
}

// ParseYear parses raw as a calendar year, recording a field error for key on failure.
func ParseYear(raw, key string, fieldErrors FieldErrors) int {
	y, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		fieldErrors.Add(key, invalidField(key))
		return 0
	}
	if err := ValidateYear(y); err != nil {
		fieldErrors.Add(key, err.Error())
		return 0
	}
	return y
}

// ParseYearParam reads an optional year from the query. ok is false when the key is absent.
func ParseYearParam(params url.Values, key string, fieldErrors FieldErrors) (year int, ok bool) {
	raw := params.Get(key)
	if raw == "" {
		return 0, false
	}
	return ParseYear(raw, key, fieldErrors), true
}

// ParseYearList reads a comma separated list of years, e.g. years=2020,2024.
// Duplicates are dropped and the input order is kept.
func ParseYearList(params url.Values, key string, fieldErrors FieldErrors) []int {
	raw := params.Get(key)
	if raw == "" {
		return nil
	}

	seen := make(map[int]bool)
	var years []int
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		y := ParseYear(part, key, fieldErrors)
		if y == 0 || seen[y] {
			continue
		}
		seen[y] = true
		years = append(years, y)
	}
	return years
}

// ParseModeParam resolves a mode from its slug or display name.
func ParseModeParam(raw, key string, fieldErrors FieldErrors) ridership.Mode {
	if err := ValidateID(raw); err != nil {
		fieldErrors.Add(key, err.Error())
		return 0
	}
	m, err := ridership.ParseMode(raw)
	if err != nil {
		fieldErrors.Add(key, invalidField(key))
		return 0
	}
	return m
}

// ParseSelectorParam resolves a mode or "total".
func ParseSelectorParam(raw, key string, fieldErrors FieldErrors) ridership.Selector {
	if raw != "" {
		if err := ValidateID(raw); err != nil {
			fieldErrors.Add(key, err.Error())
			return ridership.Selector{}
		}
	}
	sel, err := ridership.ParseSelector(raw)
	if err != nil {
		fieldErrors.Add(key, invalidField(key))
		return ridership.Selector{}
	}
	return sel
}
