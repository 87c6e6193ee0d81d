// Package keystore persists wallet key material between CLI invocations.
//
// Records are keyed by address. The payload is either a plain wallet
// export file or one sealed with wallet.EncryptExport; the store never
// inspects it.
package keystore

import (
	"bytes"
	"fmt"
	"sort"
	"sync"
)

// Record is one stored wallet.
type Record struct {
	Address       string `cbor:"address"`
	Scheme        string `cbor:"scheme"`
	AddressScheme string `cbor:"addressScheme"`
	Label         string `cbor:"label,omitempty"`
	Encrypted     bool   `cbor:"encrypted"`
	Payload       []byte `cbor:"payload"`
	CreatedAt     int64  `cbor:"createdAt"` // unix seconds
}

func (r *Record) clone() *Record {
	c := *r
	c.Payload = bytes.Clone(r.Payload)
	return &c
}

func (r *Record) check() error {
	if r == nil {
		return fmt.Errorf("%w: record", ErrNilParam)
	}
	if r.Address == "" {
		return fmt.Errorf("%w: address", ErrNilParam)
	}
	if len(r.Payload) == 0 {
		return fmt.Errorf("%w: payload", ErrNilParam)
	}
	return nil
}

// Store persists wallet records.
type Store interface {
	// Put stores a new record. An existing address yields ErrDuplicate.
	Put(r *Record) error

	// Get returns the record for address or ErrNotFound.
	Get(address string) (*Record, error)

	// List returns all records ordered by address.
	List() ([]*Record, error)

	// Delete removes the record for address or returns ErrNotFound.
	Delete(address string) error
}

// MemStore is an in-memory Store for tests and ephemeral sessions.
type MemStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{records: make(map[string]*Record)}
}

// Put stores a copy of r.
func (s *MemStore) Put(r *Record) error {
	if err := r.check(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[r.Address]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, r.Address)
	}
	s.records[r.Address] = r.clone()
	return nil
}

// Get returns a copy of the record for address.
func (s *MemStore) Get(address string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[address]
	if !ok {
		return nil, ErrNotFound
	}
	return r.clone(), nil
}

// List returns copies of all records ordered by address.
func (s *MemStore) List() ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return out, nil
}

// Delete removes the record for address.
func (s *MemStore) Delete(address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[address]; !ok {
		return ErrNotFound
	}
	delete(s.records, address)
	return nil
}
