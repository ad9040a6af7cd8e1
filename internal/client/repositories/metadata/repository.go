// Package metadata is the local key/value table that backs the token store and
// the inactivity timestamp.
package metadata

import (
	"context"
)

// Repository stores small opaque values by key.
//
// Get returns (nil, nil) when the key is absent, and Delete of a missing key is
// a no-op.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// List returns every pair whose key starts with prefix; "" lists all.
	List(ctx context.Context, prefix string) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
