// Package manifest records generation runs so outputs can be traced back to
// the seed and parameters that produced them.
package manifest

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"pkg.jsn.cam/stressgen/pkg/storage"
)

var ErrRunNotFound = errors.New("run not found")

var runsBucket = []byte("runs")

// Run is one invocation of the generator
type Run struct {
	ID         string    `json:"id"`
	Seed       uint64    `json:"seed"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Outputs    []Output  `json:"outputs"`
}

// Output is one written file
type Output struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Bytes  int64  `json:"bytes"`
	SHA256 string `json:"sha256"`

	// Params are the budgets the output was generated with
	MaxDepth int     `json:"max_depth"`
	Budget   float64 `json:"budget"`
}

// Store persists runs as JSON in a single bucket keyed by run ID
type Store struct {
	store *storage.JSONStore
}

// Open opens or creates a bbolt manifest at path
func Open(path string) (*Store, error) {
	backend, err := storage.NewBboltBackend(path)
	if err != nil {
		return nil, err
	}

	s, err := NewStore(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return s, nil
}

// NewStore wraps an existing backend
func NewStore(backend storage.Backend) (*Store, error) {
	store := storage.NewJSONStore(backend)
	if err := store.CreateBucket(runsBucket); err != nil {
		return nil, fmt.Errorf("create runs bucket: %w", err)
	}
	return &Store{store: store}, nil
}

// Record saves run, replacing any run with the same ID
func (s *Store) Record(run *Run) error {
	if run.ID == "" {
		return errors.New("run has no ID")
	}
	if err := s.store.PutJSON(runsBucket, []byte(run.ID), run); err != nil {
		return fmt.Errorf("record run %s: %w", run.ID, err)
	}
	return nil
}

// Get returns the run with id, or ErrRunNotFound
func (s *Store) Get(id string) (*Run, error) {
	var run Run
	found, err := s.store.GetJSON(runsBucket, []byte(id), &run)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return &run, nil
}

// List returns all runs, oldest first
func (s *Store) List() ([]*Run, error) {
	var runs []*Run
	err := storage.ForEachJSON(s.store, runsBucket, func(_ []byte, run *Run) error {
		runs = append(runs, run)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(runs, func(a, b *Run) int {
		return a.StartedAt.Compare(b.StartedAt)
	})
	return runs, nil
}

// Close closes the underlying backend
func (s *Store) Close() error {
	return s.store.Close()
}
