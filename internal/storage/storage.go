// Package storage is the persistence adapter: one named JSON value per
// key in an embedded badger database. Reads and writes are synchronous
// and atomic per key; there are no cross-key transactions. Callers own
// the read-modify-write cycle, and the last write to a key wins.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dgraph-io/badger"
)

// ErrNotFound reports that a key holds no usable value. A corrupted
// value is reported the same way: the adapter clears the key and the
// caller proceeds with its default, so one bad blob cannot wedge a
// collection forever.
var ErrNotFound = errors.New("storage: key not found")

// ErrQuotaExceeded reports that an encoded value is larger than the
// configured per-key budget. The write is aborted before it reaches
// disk; previously stored state is untouched.
var ErrQuotaExceeded = errors.New("storage: value quota exceeded")

type Adapter struct {
	db    *badger.DB
	quota int
}

// Open creates the data directory if needed and opens the badger store
// beneath it. quotaBytes bounds the encoded size of a single value;
// zero disables the check.
func Open(dataDir string, quotaBytes int) (*Adapter, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir %q: %w", dataDir, err)
	}
	opts := badger.DefaultOptions(dataDir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger store: %w", err)
	}
	return &Adapter{db: db, quota: quotaBytes}, nil
}

func (a *Adapter) Close() error {
	return a.db.Close()
}

// Read unmarshals the value stored under key into out. It returns
// ErrNotFound when the key is absent, and also when the stored bytes
// fail to parse, in which case the corrupted key is removed first.
func (a *Adapter) Read(key string, out interface{}) error {
	var raw []byte
	err := a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("reading key %q: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Printf("storage: clearing corrupted value under %q: %v", key, err)
		_ = a.Remove(key)
		return ErrNotFound
	}
	return nil
}

// Write marshals value and stores it under key, replacing any previous
// value wholesale.
func (a *Adapter) Write(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding value for key %q: %w", key, err)
	}
	if a.quota > 0 && len(raw) > a.quota {
		return fmt.Errorf("%w: key %q needs %d bytes, budget is %d", ErrQuotaExceeded, key, len(raw), a.quota)
	}
	err = a.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), raw)
	})
	if err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}

// Remove deletes the key. Removing an absent key is not an error.
func (a *Adapter) Remove(key string) error {
	err := a.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("removing key %q: %w", key, err)
	}
	return nil
}

// WriteRaw stores bytes under key without JSON encoding. Tests use it
// to plant garbage; nothing else should.
func (a *Adapter) WriteRaw(key string, raw []byte) error {
	return a.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), raw)
	})
}
