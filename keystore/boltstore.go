package keystore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
	"go.etcd.io/bbolt"
)

var bucketWallets = []byte("wallets")

// encMode produces deterministic CBOR so identical records store identical bytes.
var encMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// BoltStore is a Store backed by a bbolt file. Keys are addresses, values
// CBOR-encoded records.
type BoltStore struct {
	db *bbolt.DB
}

var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("keystore: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("keystore: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketWallets)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("keystore: create bucket %q: %w", bucketWallets, err)
	}
	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// Put stores r under its address.
func (s *BoltStore) Put(r *Record) error {
	if err := r.check(); err != nil {
		return err
	}
	data, err := encMode.Marshal(r)
	if err != nil {
		return fmt.Errorf("keystore: encode record: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketWallets)
		key := []byte(r.Address)
		if b.Get(key) != nil {
			return fmt.Errorf("%w: %s", ErrDuplicate, r.Address)
		}
		if err := b.Put(key, data); err != nil {
			return fmt.Errorf("keystore: put record: %w", err)
		}
		return nil
	})
}

// Get returns the record stored under address.
func (s *BoltStore) Get(address string) (*Record, error) {
	if address == "" {
		return nil, fmt.Errorf("%w: address", ErrNilParam)
	}
	var r Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketWallets).Get([]byte(address))
		if data == nil {
			return ErrNotFound
		}
		return decodeRecord(data, &r)
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// List returns every record in key order, which bbolt keeps sorted.
func (s *BoltStore) List() ([]*Record, error) {
	var out []*Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketWallets).ForEach(func(_, v []byte) error {
			var r Record
			if err := decodeRecord(v, &r); err != nil {
				return err
			}
			out = append(out, &r)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the record stored under address.
func (s *BoltStore) Delete(address string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketWallets)
		key := []byte(address)
		if b.Get(key) == nil {
			return ErrNotFound
		}
		return b.Delete(key)
	})
}

// decodeRecord copies out of data, which bbolt only guarantees for the
// life of the transaction.
func decodeRecord(data []byte, r *Record) error {
	if err := cbor.Unmarshal(data, r); err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptRecord, err)
	}
	return nil
}
