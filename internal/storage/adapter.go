package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"noteup/internal/core"
)

// SchemaVersion is the current persisted payload version. Version 0 (a
// bare JSON array with no envelope) is still readable.
const SchemaVersion = 1

// ErrCorrupt marks a persisted payload that cannot be decoded. The load
// policy for it belongs to the caller: degrade to an empty ledger rather
// than crash.
var ErrCorrupt = errors.New("corrupt ledger payload")

// WriteError is a persistence write refusal, surfaced distinctly so the
// caller never silently drops it.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write ledger slot %q: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

type envelope struct {
	SchemaVersion int           `json:"schemaVersion"`
	Records       []core.Record `json:"records"`
}

// Adapter serializes the record list to and from one named slot of a KV
// store.
type Adapter struct {
	kv  KV
	key string
}

func NewAdapter(kv KV, key string) *Adapter {
	return &Adapter{kv: kv, key: key}
}

// Load reads the slot. A slot that was never written yields an empty
// record list; an undecodable slot yields an error wrapping ErrCorrupt.
func (a *Adapter) Load(ctx context.Context) ([]core.Record, error) {
	raw, ok, err := a.kv.Get(ctx, a.key)
	if err != nil {
		return nil, fmt.Errorf("load ledger slot %q: %w", a.key, err)
	}
	if !ok {
		return nil, nil
	}
	return decodePayload(raw)
}

func decodePayload(raw []byte) ([]core.Record, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.SchemaVersion >= 1 {
		return env.Records, nil
	}

	// Pre-versioning payloads were a bare array.
	var records []core.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return records, nil
}

// Save overwrites the slot with the full record list.
func (a *Adapter) Save(ctx context.Context, records []core.Record) error {
	if records == nil {
		records = []core.Record{}
	}
	payload, err := json.Marshal(envelope{SchemaVersion: SchemaVersion, Records: records})
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := a.kv.Put(ctx, a.key, payload); err != nil {
		return &WriteError{Key: a.key, Err: err}
	}
	return nil
}
