// Package validate checks candidate record fields before they reach
// the registry.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/wargadata-dev/warga-store/pkg/schema"
)

var (
	// ErrNameRequired is returned when the trimmed name is empty.
	ErrNameRequired = errors.New("name is required")
	// ErrNameTooShort is returned when the trimmed name has fewer than 3 characters.
	ErrNameTooShort = errors.New("name must be at least 3 characters")
	// ErrNationalIDFormat is returned when the national id is not exactly 16 digits.
	ErrNationalIDFormat = errors.New("national id must be exactly 16 digits")
	// ErrNationalIDTaken is returned when another record already holds the national id.
	ErrNationalIDTaken = errors.New("national id is already registered")
)

var nationalIDPattern = regexp.MustCompile(`^\d{16}$`)

// Validate runs the structural and uniqueness checks in order, first
// failure wins: empty name, short name, malformed national id,
// duplicate national id. Address and amount are deliberately
// unchecked. A nil return approves the fields.
func Validate(name, nationalID string, existing []schema.Record) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrNameRequired
	}
	if utf8.RuneCountInString(trimmed) < 3 {
		return ErrNameTooShort
	}
	if !nationalIDPattern.MatchString(nationalID) {
		return ErrNationalIDFormat
	}
	for _, rec := range existing {
		if rec.NationalID == nationalID {
			return ErrNationalIDTaken
		}
	}
	return nil
}
