package store

import (
	"context"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/pithecene-io/hallmark/metrics"
	"github.com/pithecene-io/hallmark/types"
)

// Backend moves opaque record bytes to and from a storage medium.
// Implementations classify their failures via StoreError.
type Backend interface {
	// Put writes the record bytes under name, replacing any existing record.
	Put(ctx context.Context, name string, data []byte) error
	// Get reads the record bytes stored under name.
	Get(ctx context.Context, name string) ([]byte, error)
}

// Store persists fingerprint records through a Backend using the msgpack
// record encoding.
type Store struct {
	backend Backend
	metrics *metrics.Collector
}

// New creates a store over the given backend. Metrics may be nil.
func New(backend Backend, collector *metrics.Collector) *Store {
	return &Store{backend: backend, metrics: collector}
}

// Save encodes and writes a fingerprint record. The record is validated
// before encoding so malformed records never reach the backend.
func (s *Store) Save(ctx context.Context, name string, fp *types.Fingerprint) error {
	if err := fp.Validate(); err != nil {
		return &StoreError{Kind: ErrCorrupt, Op: "save", Path: name, Err: err}
	}
	data, err := msgpack.Marshal(fp)
	if err != nil {
		return &StoreError{Kind: ErrCorrupt, Op: "save", Path: name, Err: err}
	}

	if err := s.backend.Put(ctx, name, data); err != nil {
		s.metrics.IncStoreWriteFailure()
		return err
	}
	s.metrics.IncStoreWriteSuccess()
	return nil
}

// Load reads and decodes a fingerprint record. A record that decodes but
// fails validation is classified ErrCorrupt; the caller should treat the
// stored vector as unusable rather than partially trusted.
func (s *Store) Load(ctx context.Context, name string) (*types.Fingerprint, error) {
	data, err := s.backend.Get(ctx, name)
	if err != nil {
		s.metrics.IncStoreReadFailure()
		return nil, err
	}

	var fp types.Fingerprint
	if err := msgpack.Unmarshal(data, &fp); err != nil {
		s.metrics.IncStoreReadFailure()
		return nil, &StoreError{Kind: ErrCorrupt, Op: "load", Path: name, Err: err}
	}
	if err := fp.Validate(); err != nil {
		s.metrics.IncStoreReadFailure()
		return nil, &StoreError{Kind: ErrCorrupt, Op: "load", Path: name, Err: fmt.Errorf("record validation: %w", err)}
	}
	s.metrics.IncStoreReadSuccess()
	return &fp, nil
}
