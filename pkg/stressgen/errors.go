package stressgen

import "errors"

// Sentinel errors for generation and validation
var (
	// Budget errors
	ErrNegativeBudget = errors.New("depth and budget must be non-negative")
	ErrDepthLimit     = errors.New("depth exceeds recursion limit")
	ErrBudgetLimit    = errors.New("budget is not a finite number within limit")

	// Validation errors
	ErrUnbalanced    = errors.New("unbalanced bracket sequence")
	ErrMalformedTags = errors.New("malformed tag sequence")
	ErrNotSingleRoot = errors.New("document does not have exactly one root element")
)
