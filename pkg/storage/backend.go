// Package storage is a small bucketed key/value layer used for run history.
package storage

import "errors"

// ErrBucketNotFound is returned when an operation names a bucket that was
// never created.
var ErrBucketNotFound = errors.New("bucket not found")

// Backend is a bucketed key/value store working on raw bytes.
// ForEach visits keys in ascending byte order.
type Backend interface {
	CreateBucket(name []byte) error

	Put(bucket, key, value []byte) error
	Get(bucket, key []byte) ([]byte, error)
	ForEach(bucket []byte, fn func(k, v []byte) error) error

	Close() error
}
