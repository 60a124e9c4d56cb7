package utils

import (
	"errors"
	"regexp"
)

// Compiled regular expressions for validation
var (
	// Allow alphanumeric, underscore, hyphen, dot - covers reservoir IDs and run UUIDs
	validIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
)

// ValidateID validates that an ID is safe and within reasonable limits
func ValidateID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}

	if len(id) > 100 {
		return errors.New("id too long (max 100 characters)")
	}

	if !validIDPattern.MatchString(id) {
		return errors.New("id contains invalid characters")
	}

	return nil
}

// ValidateVolume validates stored-volume query values
func ValidateVolume(volume float64) error {
	if volume < 0 {
		return errors.New("volume must be non-negative")
	}
	return nil
}

// ValidateWeeks validates requested simulation lengths. Zero means the full
// dataset horizon.
func ValidateWeeks(weeks int) error {
	if weeks < 0 {
		return errors.New("weeks must be non-negative")
	}

	if weeks == 1 {
		return errors.New("weeks must be at least 2 (week 0 is the initial condition)")
	}

	// A century of weekly steps is more than any dataset here carries
	if weeks > 5200 {
		return errors.New("weeks too large (max 5200)")
	}

	return nil
}

// ValidateStreamflowParams validates the generator parameters as a field-error map
func ValidateStreamflowParams(weeks int, logSigma float64) map[string][]string {
	fieldErrors := make(map[string][]string)

	if weeks < 1 {
		fieldErrors["weeks"] = append(fieldErrors["weeks"], "weeks must be at least 1")
	}
	if weeks > 5200 {
		fieldErrors["weeks"] = append(fieldErrors["weeks"], "weeks too large (max 5200)")
	}
	if logSigma < 0 {
		fieldErrors["logSigma"] = append(fieldErrors["logSigma"], "logSigma must be non-negative")
	}

	return fieldErrors
}
