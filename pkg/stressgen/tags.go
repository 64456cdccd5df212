package stressgen

import (
	"fmt"
	"math"
	"strings"
)

const (
	tagAlphabet   = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	minTagNameLen = 2
	maxTagNameLen = 12
)

// TagPair is the opening and closing marker of one element.
type TagPair struct {
	Open  string
	Close string
}

// TagName returns a random name of 2 to 12 ASCII letters
func (g *Generator) TagName() string {
	name := make([]byte, g.src.IntRange(minTagNameLen, maxTagNameLen))
	for i := range name {
		name[i] = tagAlphabet[g.src.Choose(len(tagAlphabet))]
	}
	return string(name)
}

// Tags returns an open/close pair around a fresh TagName. Names are not
// deduplicated across calls.
func (g *Generator) Tags() TagPair {
	name := g.TagName()
	return TagPair{
		Open:  "<" + name + ">",
		Close: "</" + name + ">",
	}
}

// TagTree returns a nested markup fragment rooted at a single element.
//
// allowedChildren is the number of descendants the subtree may spawn. An
// element with a budget below 1, at depth 0, or that draws zero children is
// an empty leaf. Otherwise it gets up to floor(allowedChildren/3) children,
// each receiving an equal share of what is left after paying for them.
func (g *Generator) TagTree(maxDepth int, allowedChildren float64) (string, error) {
	if err := checkBudget(maxDepth, allowedChildren); err != nil {
		return "", fmt.Errorf("tag tree(%d, %g): %w", maxDepth, allowedChildren, err)
	}

	return build(func(b *strings.Builder) {
		g.writeTagTree(b, maxDepth, allowedChildren)
	}), nil
}

func (g *Generator) writeTagTree(b *strings.Builder, maxDepth int, allowed float64) {
	tags := g.Tags()

	b.WriteString(tags.Open)
	if allowed >= 1 && maxDepth > 0 {
		children := g.src.IntRange(0, int(math.Floor(allowed/3)))
		if children > 0 {
			share := (allowed - float64(children)) / float64(children)
			for range children {
				g.writeTagTree(b, maxDepth-1, share)
			}
		}
	}
	b.WriteString(tags.Close)
}
