package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage wraps BadgerDB for persistent result storage. Keys are 64-bit
// position digests; values are JSON documents with a per-entry TTL.
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) the database in dir. An empty dir keeps the
// database in memory.
func Open(dir string) (*Storage, error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(dir)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("storage: open %q: %w", dir, err)
	}
	return &Storage{db: db}, nil
}

// OpenDefault opens the database in the platform cache directory.
func OpenDefault() (*Storage, error) {
	dir, err := GetCacheDir()
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	return Open(dir)
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func encodeKey(key uint64) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], key)
	return k[:]
}

// Put stores v under key for ttl. A non-positive ttl never expires.
func (s *Storage) Put(key uint64, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: encode: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(encodeKey(key), data)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
}

// Get decodes the value under key into v. It reports false, with v
// untouched, when the key is missing or expired.
func (s *Storage) Get(key uint64, v any) (bool, error) {
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(encodeKey(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	if err != nil {
		return false, fmt.Errorf("storage: get: %w", err)
	}
	return found, nil
}

// Delete removes key. Missing keys are not an error.
func (s *Storage) Delete(key uint64) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(encodeKey(key))
	})
}

// Len returns the number of live entries.
func (s *Storage) Len() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// Size returns the on-disk size of the LSM tree and value log in bytes.
func (s *Storage) Size() int64 {
	lsm, vlog := s.db.Size()
	return lsm + vlog
}
