package storage

import (
	"bytes"
	"errors"
	"testing"
)

// backendTestSuite runs the same checks against any Backend implementation
func backendTestSuite(t *testing.T, newBackend func() (Backend, func(), error)) {
	t.Run("CreateBucket", func(t *testing.T) {
		backend, cleanup, err := newBackend()
		if err != nil {
			t.Fatalf("failed to create backend: %v", err)
		}
		defer cleanup()

		if err := backend.CreateBucket([]byte("runs")); err != nil {
			t.Fatalf("CreateBucket failed: %v", err)
		}
		if err := backend.Put([]byte("runs"), []byte("a"), []byte("1")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		// Idempotent, and keeps existing keys
		if err := backend.CreateBucket([]byte("runs")); err != nil {
			t.Errorf("CreateBucket should be idempotent: %v", err)
		}
		got, _ := backend.Get([]byte("runs"), []byte("a"))
		if string(got) != "1" {
			t.Errorf("Get after re-create returned %q, want %q", got, "1")
		}
	})

	t.Run("PutAndGet", func(t *testing.T) {
		backend, cleanup, err := newBackend()
		if err != nil {
			t.Fatalf("failed to create backend: %v", err)
		}
		defer cleanup()

		backend.CreateBucket([]byte("runs"))

		value := []byte("value1")
		if err := backend.Put([]byte("runs"), []byte("key1"), value); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		got, err := backend.Get([]byte("runs"), []byte("key1"))
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !bytes.Equal(got, value) {
			t.Errorf("Get returned %s, want %s", got, value)
		}

		// Returned slice must not alias stored data
		got[0] = 'X'
		again, _ := backend.Get([]byte("runs"), []byte("key1"))
		if !bytes.Equal(again, value) {
			t.Errorf("stored value changed through returned slice: %s", again)
		}

		got, err = backend.Get([]byte("runs"), []byte("nonexistent"))
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != nil {
			t.Errorf("Get should return nil for non-existent key, got %s", got)
		}
	})

	t.Run("MissingBucket", func(t *testing.T) {
		backend, cleanup, err := newBackend()
		if err != nil {
			t.Fatalf("failed to create backend: %v", err)
		}
		defer cleanup()

		if err := backend.Put([]byte("nope"), []byte("k"), []byte("v")); !errors.Is(err, ErrBucketNotFound) {
			t.Errorf("Put error = %v, want %v", err, ErrBucketNotFound)
		}
		if _, err := backend.Get([]byte("nope"), []byte("k")); !errors.Is(err, ErrBucketNotFound) {
			t.Errorf("Get error = %v, want %v", err, ErrBucketNotFound)
		}
		err = backend.ForEach([]byte("nope"), func(k, v []byte) error { return nil })
		if !errors.Is(err, ErrBucketNotFound) {
			t.Errorf("ForEach error = %v, want %v", err, ErrBucketNotFound)
		}
	})

	t.Run("ForEachOrdered", func(t *testing.T) {
		backend, cleanup, err := newBackend()
		if err != nil {
			t.Fatalf("failed to create backend: %v", err)
		}
		defer cleanup()

		backend.CreateBucket([]byte("runs"))
		for _, k := range []string{"c", "a", "b"} {
			backend.Put([]byte("runs"), []byte(k), []byte("v"+k))
		}

		var keys []string
		err = backend.ForEach([]byte("runs"), func(k, v []byte) error {
			if string(v) != "v"+string(k) {
				t.Errorf("key %s has value %s", k, v)
			}
			keys = append(keys, string(k))
			return nil
		})
		if err != nil {
			t.Fatalf("ForEach failed: %v", err)
		}
		if got := len(keys); got != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
			t.Errorf("ForEach visited %v, want [a b c]", keys)
		}
	})

	t.Run("ForEachStopsOnError", func(t *testing.T) {
		backend, cleanup, err := newBackend()
		if err != nil {
			t.Fatalf("failed to create backend: %v", err)
		}
		defer cleanup()

		backend.CreateBucket([]byte("runs"))
		backend.Put([]byte("runs"), []byte("a"), []byte("1"))
		backend.Put([]byte("runs"), []byte("b"), []byte("2"))

		stop := errors.New("stop")
		visited := 0
		err = backend.ForEach([]byte("runs"), func(k, v []byte) error {
			visited++
			return stop
		})
		if !errors.Is(err, stop) {
			t.Errorf("ForEach error = %v, want %v", err, stop)
		}
		if visited != 1 {
			t.Errorf("ForEach visited %d keys after error, want 1", visited)
		}
	})
}

func TestMemoryBackend(t *testing.T) {
	backendTestSuite(t, func() (Backend, func(), error) {
		backend := NewMemoryBackend()
		return backend, func() {}, nil
	})
}
