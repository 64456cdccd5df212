// Package config holds the generation parameters and output locations.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pkg.jsn.cam/stressgen/pkg/stressgen"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config describes one generation run
type Config struct {
	// OutputDir holds both output files. It must exist unless CreateDirs is set.
	OutputDir  string `yaml:"output_dir"`
	CreateDirs bool   `yaml:"create_dirs"`

	// Seed replays a previous run. Nil picks a fresh random seed; any value,
	// 0 included, pins it.
	Seed *uint64 `yaml:"seed"`

	Brackets BracketConfig `yaml:"brackets"`
	Tags     TagConfig     `yaml:"tags"`

	// Manifest is a bbolt file recording each run. Empty disables it.
	Manifest string `yaml:"manifest"`
	LogLevel string `yaml:"log_level"`
	Progress bool   `yaml:"progress"`
}

// BracketConfig parameterizes the bracket output
type BracketConfig struct {
	File     string  `yaml:"file"`
	MaxDepth int     `yaml:"max_depth"`
	Parallel float64 `yaml:"parallel"`
}

// TagConfig parameterizes the tag markup output
type TagConfig struct {
	File            string  `yaml:"file"`
	MaxDepth        int     `yaml:"max_depth"`
	AllowedChildren float64 `yaml:"allowed_children"`
}

// Default returns the parameters of the stock benchmark inputs:
// benches/stress.txt and benches/stress_html.txt.
func Default() Config {
	return Config{
		OutputDir: "benches",
		Brackets: BracketConfig{
			File:     "stress.txt",
			MaxDepth: 100,
			Parallel: 2000,
		},
		Tags: TagConfig{
			File:            "stress_html.txt",
			MaxDepth:        50,
			AllowedChildren: 2000,
		},
		LogLevel: "info",
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value. An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every parameter is usable
func (c Config) Validate() error {
	var errs []error

	if c.Brackets.File == "" {
		errs = append(errs, errors.New("brackets.file is empty"))
	}
	if c.Tags.File == "" {
		errs = append(errs, errors.New("tags.file is empty"))
	}
	if c.Brackets.File != "" && c.Brackets.File == c.Tags.File {
		errs = append(errs, fmt.Errorf("brackets and tags both write %s", c.Brackets.File))
	}
	if err := checkDepth("brackets.max_depth", c.Brackets.MaxDepth); err != nil {
		errs = append(errs, err)
	}
	if err := checkDepth("tags.max_depth", c.Tags.MaxDepth); err != nil {
		errs = append(errs, err)
	}
	if err := checkBudget("brackets.parallel", c.Brackets.Parallel); err != nil {
		errs = append(errs, err)
	}
	if err := checkBudget("tags.allowed_children", c.Tags.AllowedChildren); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func checkDepth(field string, depth int) error {
	if depth < 0 || depth > stressgen.MaxDepth {
		return fmt.Errorf("%s %d outside [0, %d]", field, depth, stressgen.MaxDepth)
	}
	return nil
}

func checkBudget(field string, budget float64) error {
	if err := stressgen.CheckBudgetValue(budget); err != nil {
		return fmt.Errorf("%s %g outside [0, %d]: %w", field, budget, stressgen.MaxBudget, err)
	}
	return nil
}

// BracketsPath is where the bracket output is written
func (c Config) BracketsPath() string {
	return filepath.Join(c.OutputDir, c.Brackets.File)
}

// TagsPath is where the tag output is written
func (c Config) TagsPath() string {
	return filepath.Join(c.OutputDir, c.Tags.File)
}
