// Package tokenstore persists the session token between runs.
//
// Two implementations share the local metadata table: SecureStore seals values
// with a per-device key, PlainStore writes them as-is. Select picks the secure
// one whenever the device key is usable.
package tokenstore

import (
	"context"
)

// Store persists small string values by key. Load returns "" for a key that
// was never saved, and deleting a missing key is not an error.
type Store interface {
	Save(ctx context.Context, key, value string) error
	Load(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
