package types

import (
	"database/sql"
	"regexp"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-internship/app/apperr"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IsValidEmail applies the permissive local@domain.tld check.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func requireText(value, message string) error {
	if strings.TrimSpace(value) == "" {
		return apperr.Validation(message)
	}
	return nil
}

func optionalEmail(email string) error {
	email = strings.TrimSpace(email)
	if email != "" && !IsValidEmail(email) {
		return apperr.Validation("Invalid email")
	}
	return nil
}

func optionalDate(value, field string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if _, err := time.Parse(time.DateOnly, value); err != nil {
		return apperr.Validation(field + " must be a date in YYYY-MM-DD format")
	}
	return nil
}

// NullString trims value and maps the empty string to NULL.
func NullString(value string) sql.NullString {
	value = strings.TrimSpace(value)
	return sql.NullString{String: value, Valid: value != ""}
}

// NullDate parses a YYYY-MM-DD value; empty or malformed input maps to NULL.
func NullDate(value string) sql.NullTime {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(value))
	if err != nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
