package store

import (
	"errors"

	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/storage"
)

// Collection is an ordered list of same-shaped records stored as one
// JSON array under a single key. Every mutation is a full
// read-modify-write of that key: there is no row-level update at the
// adapter, and two views racing on the same collection resolve to
// whichever wrote last. Append order is insertion order.
type Collection[T any] struct {
	adapter  *storage.Adapter
	key      string
	defaults func(*T)
}

// NewCollection binds a collection to its storage key. defaults, when
// non-nil, is applied to every record as it is loaded so downstream
// code always sees fully populated records; it is the one place where
// optional fields written by older clients get their fallback values.
func NewCollection[T any](adapter *storage.Adapter, key string, defaults func(*T)) *Collection[T] {
	return &Collection[T]{adapter: adapter, key: key, defaults: defaults}
}

func (c *Collection[T]) Key() string { return c.key }

// LoadAll returns every record in insertion order. An absent or
// unreadable key yields an empty slice, never an error the caller has
// to distinguish from "no data yet".
func (c *Collection[T]) LoadAll() ([]T, error) {
	var records []T
	err := c.adapter.Read(c.key, &records)
	if errors.Is(err, storage.ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}
	if c.defaults != nil {
		for i := range records {
			c.defaults(&records[i])
		}
	}
	return records, nil
}

// ReplaceAll persists records as the collection's new full contents in
// one write.
func (c *Collection[T]) ReplaceAll(records []T) error {
	return c.adapter.Write(c.key, records)
}

// Append adds record at the end of the collection. Identity fields are
// the caller's responsibility; the typed stores assign them before
// calling here.
func (c *Collection[T]) Append(record T) error {
	records, err := c.LoadAll()
	if err != nil {
		return err
	}
	return c.ReplaceAll(append(records, record))
}

// UpdateMatching applies patch to the first record satisfying match and
// writes the collection back. It reports whether a record was found;
// no match is a silent no-op, since callers may be holding a stale
// view of the collection.
func (c *Collection[T]) UpdateMatching(match func(T) bool, patch func(*T)) (bool, error) {
	records, err := c.LoadAll()
	if err != nil {
		return false, err
	}
	for i := range records {
		if match(records[i]) {
			patch(&records[i])
			return true, c.ReplaceAll(records)
		}
	}
	return false, nil
}

// RemoveMatching deletes every record satisfying match and reports how
// many were removed. Zero removals skips the write entirely.
func (c *Collection[T]) RemoveMatching(match func(T) bool) (int, error) {
	records, err := c.LoadAll()
	if err != nil {
		return 0, err
	}
	kept := records[:0]
	removed := 0
	for _, record := range records {
		if match(record) {
			removed++
			continue
		}
		kept = append(kept, record)
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, c.ReplaceAll(kept)
}

// Filter returns the records satisfying match, in insertion order,
// without touching storage beyond the read.
func (c *Collection[T]) Filter(match func(T) bool) ([]T, error) {
	records, err := c.LoadAll()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(records))
	for _, record := range records {
		if match(record) {
			out = append(out, record)
		}
	}
	return out, nil
}
