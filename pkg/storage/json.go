package storage

import (
	"encoding/json"
	"fmt"
)

// JSONStore wraps a Backend and stores values as JSON
type JSONStore struct {
	backend Backend
}

func NewJSONStore(backend Backend) *JSONStore {
	return &JSONStore{backend: backend}
}

func (j *JSONStore) CreateBucket(name []byte) error {
	return j.backend.CreateBucket(name)
}

// PutJSON stores a JSON-encoded value in a bucket
func (j *JSONStore) PutJSON(bucket, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return j.backend.Put(bucket, key, data)
}

// GetJSON decodes the value at key into v. It reports whether the key was
// present; v is left untouched when it was not.
func (j *JSONStore) GetJSON(bucket, key []byte, v any) (bool, error) {
	data, err := j.backend.Get(bucket, key)
	if err != nil {
		return false, err
	}

	if data == nil {
		return false, nil
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode JSON: %w", err)
	}

	return true, nil
}

// ForEachJSON decodes every value in bucket and passes it to fn in key order
func ForEachJSON[T any](j *JSONStore, bucket []byte, fn func(key []byte, v *T) error) error {
	return j.backend.ForEach(bucket, func(k, data []byte) error {
		v := new(T)
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to decode JSON at key %s: %w", k, err)
		}
		return fn(k, v)
	})
}

// Close closes the underlying backend
func (j *JSONStore) Close() error {
	return j.backend.Close()
}
