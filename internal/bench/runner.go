package bench

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"pkg.jsn.cam/stressgen/internal/config"
	"pkg.jsn.cam/stressgen/internal/manifest"
	"pkg.jsn.cam/stressgen/pkg/stressgen"
)

const writeChunkSize = 64 << 10

// Runner generates and writes all targets of a config
type Runner struct {
	logger   *slog.Logger
	manifest *manifest.Store
	progress io.Writer
	now      func() time.Time
}

type Option func(*Runner)

// WithManifest records every successful run in m
func WithManifest(m *manifest.Store) Option {
	return func(r *Runner) { r.manifest = m }
}

// WithProgress draws a progress bar on w while files are written
func WithProgress(w io.Writer) Option {
	return func(r *Runner) { r.progress = w }
}

// NewRunner returns a Runner logging to logger
func NewRunner(logger *slog.Logger, opts ...Option) *Runner {
	r := &Runner{
		logger: logger.With("component", "bench"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run renders every target, then writes them. Nothing is written if any
// render fails. A failed write leaves earlier files in place.
func (r *Runner) Run(cfg config.Config) (*manifest.Run, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	src := stressgen.NewRandomSource()
	if cfg.Seed != nil {
		src = stressgen.NewSource(*cfg.Seed)
	}
	gen := stressgen.New(src)

	run := &manifest.Run{
		ID:        uuid.New().String(),
		Seed:      src.Seed(),
		StartedAt: r.now(),
	}
	r.logger.Info("generating", "run", run.ID, "seed", run.Seed)

	targets := Targets(cfg)
	contents := make([]string, len(targets))
	for i, t := range targets {
		s, err := t.render(gen)
		if err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrGenerate, t.Name, err)
		}
		contents[i] = s
		r.logger.Debug("rendered", "target", t.Name, "size", humanize.Bytes(uint64(len(s))))
	}

	if cfg.CreateDirs {
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	}

	for i, t := range targets {
		if err := r.write(t.Path, contents[i]); err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrWriteOutput, t.Path, err)
		}

		sum := sha256.Sum256([]byte(contents[i]))
		run.Outputs = append(run.Outputs, manifest.Output{
			Name:     t.Name,
			Path:     t.Path,
			Bytes:    int64(len(contents[i])),
			SHA256:   hex.EncodeToString(sum[:]),
			MaxDepth: t.MaxDepth,
			Budget:   t.Budget,
		})
		r.logger.Info("wrote output", "target", t.Name, "path", t.Path, "size", humanize.Bytes(uint64(len(contents[i]))))
	}
	run.FinishedAt = r.now()

	if r.manifest != nil {
		if err := r.manifest.Record(run); err != nil {
			return run, err
		}
		r.logger.Debug("recorded run", "run", run.ID)
	}

	return run, nil
}

// write creates or truncates path and writes content in one pass
func (r *Runner) write(path, content string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	var w io.Writer = f
	if r.progress != nil {
		bar := progressbar.NewOptions64(int64(len(content)),
			progressbar.OptionSetWriter(r.progress),
			progressbar.OptionSetDescription(filepath.Base(path)),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Finish()
		w = io.MultiWriter(f, bar)
	}

	for len(content) > 0 {
		n := min(len(content), writeChunkSize)
		if _, err := io.WriteString(w, content[:n]); err != nil {
			f.Close()
			return err
		}
		content = content[n:]
	}

	return f.Close()
}
