package stressgen

import (
	"fmt"
	"math"
	"strings"
)

const (
	// Below this depth Brackets stops branching and emits a terminal.
	minBranchDepth = 5
	// Terminals get between 0 and this many wraps.
	maxTerminalDepth = 3
)

var bracketPairs = [...]string{"()", "[]"}

// Brackets returns a balanced sequence of () and [] pairs.
//
// Each level picks a working depth in [5, maxDepth] and a fan-out drawn from
// parallelRemaining; the remaining budget is split evenly between the
// children, which are concatenated in order. Once the depth drops below 5 a
// short Terminal is emitted instead.
func (g *Generator) Brackets(maxDepth int, parallelRemaining float64) (string, error) {
	if err := checkBudget(maxDepth, parallelRemaining); err != nil {
		return "", fmt.Errorf("brackets(%d, %g): %w", maxDepth, parallelRemaining, err)
	}

	return build(func(b *strings.Builder) {
		g.writeBrackets(b, maxDepth, parallelRemaining)
	}), nil
}

func (g *Generator) writeBrackets(b *strings.Builder, maxDepth int, remaining float64) {
	if maxDepth < minBranchDepth {
		g.writeTerminal(b, g.src.IntRange(0, maxTerminalDepth))
		return
	}

	depth := g.src.IntRange(minBranchDepth, maxDepth)

	parallel := 1
	if remaining >= 2 {
		parallel = g.src.IntRange(1, 1+int(math.Floor(remaining/2)))
	}
	remaining -= float64(parallel)

	share := remaining / float64(parallel)
	for range parallel {
		g.writeBrackets(b, depth-1, share)
	}
}

// Terminal wraps "()" depth times, each wrap a random choice of () or [].
// Terminal(0) is "()".
func (g *Generator) Terminal(depth int) string {
	return build(func(b *strings.Builder) {
		g.writeTerminal(b, depth)
	})
}

func (g *Generator) writeTerminal(b *strings.Builder, depth int) {
	depth = max(depth, 0)

	// wraps[0] is the innermost
	wraps := make([]string, depth)
	for i := range wraps {
		wraps[i] = bracketPairs[g.src.Choose(len(bracketPairs))]
	}

	b.Grow(2 * (depth + 1))
	for i := depth - 1; i >= 0; i-- {
		b.WriteByte(wraps[i][0])
	}
	b.WriteString("()")
	for _, w := range wraps {
		b.WriteByte(w[1])
	}
}
