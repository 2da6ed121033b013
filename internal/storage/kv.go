// Package storage persists the record list under a fixed key-value slot
// and provides the two slot backends: in-memory and SQLite.
package storage

import "context"

// KV is the opaque key-value store the ledger is persisted into. Get
// reports ok=false when the key has never been written.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
}
