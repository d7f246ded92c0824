package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateWeights checks that a metric weight vector has exactly want
// entries and that every entry is a finite number.
func ValidateWeights(weights []float64, want int) error {
	if len(weights) != want {
		return New(ErrCodeInvalidWeights, "expected %d weights, got %d", want, len(weights))
	}
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return New(ErrCodeInvalidWeights, "weight %d is not a finite number", i)
		}
	}
	return nil
}

// ValidateProbability checks that p lies in [0, 1].
func ValidateProbability(name string, p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return New(ErrCodeInvalidConfig, "%s must be within [0, 1], got %v", name, p)
	}
	return nil
}

// ValidateSheetName validates a worksheet name the way spreadsheet
// applications do:
//   - Name cannot be empty
//   - Maximum length of 31 characters
//   - No control characters
//   - None of the characters : \ / ? * [ ]
func ValidateSheetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "sheet name cannot be empty")
	}

	const maxSheetName = 31
	if len([]rune(name)) > maxSheetName {
		return New(ErrCodeInvalidInput, "sheet name too long (max %d characters)", maxSheetName)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "sheet name contains invalid control characters")
		}
	}

	if i := strings.IndexAny(name, `:\/?*[]`); i >= 0 {
		return New(ErrCodeInvalidInput, "sheet name contains invalid character %q", name[i])
	}

	return nil
}

// ValidatePath validates a user-supplied file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	return nil
}
