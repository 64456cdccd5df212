// Package stressgen builds randomized, well-nested inputs for parser stress
// benchmarks: balanced bracket sequences and nested pseudo-tag markup.
//
// All randomness comes from an injected Source, so a Generator seeded with
// NewSource produces the same output for the same arguments.
package stressgen

import (
	"math"
	"strings"
)

// MaxDepth bounds the depth argument accepted by Brackets and TagTree.
// Recursion depth is at most the requested depth, so this keeps the call
// stack finite for any caller-supplied value.
const MaxDepth = 100_000

// MaxBudget bounds the budget argument accepted by Brackets and TagTree.
// Fan-out draws are taken from [0, floor(budget/2)], which must fit in an int.
const MaxBudget = 1 << 40

// Generator produces stress inputs from a Source. It is not safe for
// concurrent use; give each goroutine its own Generator and Source.
type Generator struct {
	src Source
}

// New returns a Generator drawing from src.
func New(src Source) *Generator {
	return &Generator{src: src}
}

func checkBudget(maxDepth int, budget float64) error {
	if maxDepth < 0 || budget < 0 {
		return ErrNegativeBudget
	}
	if maxDepth > MaxDepth {
		return ErrDepthLimit
	}
	return CheckBudgetValue(budget)
}

// CheckBudgetValue reports whether budget is a finite number in [0, MaxBudget].
func CheckBudgetValue(budget float64) error {
	switch {
	case math.IsNaN(budget):
		return ErrBudgetLimit
	case budget < 0:
		return ErrNegativeBudget
	case budget > MaxBudget:
		return ErrBudgetLimit
	}
	return nil
}

func build(fn func(b *strings.Builder)) string {
	var b strings.Builder
	fn(&b)
	return b.String()
}
