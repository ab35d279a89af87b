package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// identifierRegex matches model and parameter identifiers as the simulation
// engine accepts them (e.g. "iaf_psc_alpha", "V_th", "tau_syn_ex").
var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// ValidateModelID validates a model identifier from a catalogue or a network
// description.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or whitespace
//   - Maximum length of 128 characters
//   - Letters, digits, underscore, dot and dash only, not starting with a digit
func ValidateModelID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidModel, "model id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidModel, "model id too long (max 128 characters)")
	}
	if err := validateChars(id); err != nil {
		return New(ErrCodeInvalidModel, "model id %q: %s", id, err.Message)
	}
	if !identifierRegex.MatchString(id) {
		return New(ErrCodeInvalidModel, "invalid model id: %q", id)
	}
	return nil
}

// ValidateParamID validates a parameter identifier.
func ValidateParamID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "parameter id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "parameter id too long (max 64 characters)")
	}
	if err := validateChars(id); err != nil {
		return New(ErrCodeInvalidInput, "parameter id %q: %s", id, err.Message)
	}
	if !identifierRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid parameter id: %q", id)
	}
	return nil
}

// ValidateSize validates a node unit count.
func ValidateSize(n int) error {
	if n < 1 {
		return New(ErrCodeInvalidInput, "unit count must be positive, got %d", n)
	}
	return nil
}

func validateChars(s string) *Error {
	for _, r := range s {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "contains invalid control characters")
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "contains whitespace")
		}
	}
	if strings.Contains(s, "\x00") {
		return New(ErrCodeInvalidInput, "contains null byte")
	}
	return nil
}
