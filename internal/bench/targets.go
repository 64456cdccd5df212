// Package bench produces the benchmark input files.
package bench

import (
	"pkg.jsn.cam/stressgen/internal/config"
	"pkg.jsn.cam/stressgen/pkg/stressgen"
)

// Target is one output file and how to render it
type Target struct {
	Name     string
	Path     string
	MaxDepth int
	Budget   float64

	render func(g *stressgen.Generator) (string, error)
	check  func(s string) error
}

// Targets returns the bracket and tag outputs described by cfg, in the
// order they are generated and written.
func Targets(cfg config.Config) []Target {
	return []Target{
		{
			Name:     "brackets",
			Path:     cfg.BracketsPath(),
			MaxDepth: cfg.Brackets.MaxDepth,
			Budget:   cfg.Brackets.Parallel,
			render: func(g *stressgen.Generator) (string, error) {
				s, err := g.Brackets(cfg.Brackets.MaxDepth, cfg.Brackets.Parallel)
				if err != nil {
					return "", err
				}
				return "[" + s + "]", nil
			},
			check: stressgen.CheckBracketDocument,
		},
		{
			Name:     "tags",
			Path:     cfg.TagsPath(),
			MaxDepth: cfg.Tags.MaxDepth,
			Budget:   cfg.Tags.AllowedChildren,
			render: func(g *stressgen.Generator) (string, error) {
				return g.TagTree(cfg.Tags.MaxDepth, cfg.Tags.AllowedChildren)
			},
			check: stressgen.CheckTagDocument,
		},
	}
}
