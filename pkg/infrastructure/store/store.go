// Package store persists JSON-encoded collections in a key-value backend.
package store

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned by Get when a key has never been written
var ErrNotFound = errors.New("store: key not found")

// Store is a string-keyed blob store. Set replaces the whole value.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// namespacedKey joins a namespace and key with ':'
func namespacedKey(namespace, key string) string {
	namespace = strings.Trim(namespace, ":")
	if namespace == "" {
		return key
	}
	return namespace + ":" + key
}
