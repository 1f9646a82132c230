// Package store persists FrameShop data as JSON and YAML documents under
// the data directory.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Record is anything stored in a Collection.
type Record interface {
	RecordID() string
}

const collectionVersion = 1

type collectionFile[T Record] struct {
	Version int `json:"version"`
	Records []T `json:"records"`
}

// Collection is one JSON document of records keyed by id. Every write
// rewrites the whole document; a write that would exceed the quota is
// rejected with ErrQuotaExceeded and leaves both file and memory unchanged.
type Collection[T Record] struct {
	mu      sync.Mutex
	name    string
	path    string
	quota   int64
	records []T
}

// OpenCollection loads the collection stored at path, or starts an empty
// one if the file does not exist. quota is in bytes; 0 means unlimited.
func OpenCollection[T Record](path string, quota int64) (*Collection[T], error) {
	c := &Collection[T]{
		name:    strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		path:    path,
		quota:   quota,
		records: []T{},
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", c.name, err)
	}
	var file collectionFile[T]
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", c.name, err)
	}
	if file.Version > collectionVersion {
		return nil, fmt.Errorf("%s version %d: %w", c.name, file.Version, ErrUnsupportedSchema)
	}
	if file.Records != nil {
		c.records = file.Records
	}
	return c, nil
}

// Name returns the collection name derived from its file name.
func (c *Collection[T]) Name() string { return c.name }

// Upsert inserts rec, or replaces the record with the same id.
func (c *Collection[T]) Upsert(ctx context.Context, rec T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id := rec.RecordID()
	if id == "" {
		return fmt.Errorf("upsert into %s: record has no id", c.name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]T, 0, len(c.records)+1)
	replaced := false
	for _, r := range c.records {
		if r.RecordID() == id {
			next = append(next, rec)
			replaced = true
			continue
		}
		next = append(next, r)
	}
	if !replaced {
		next = append(next, rec)
	}

	data, err := json.MarshalIndent(collectionFile[T]{Version: collectionVersion, Records: next}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", c.name, err)
	}
	if c.quota > 0 && int64(len(data)) > c.quota {
		return fmt.Errorf("upsert %s into %s (%d of %d bytes): %w", id, c.name, len(data), c.quota, ErrQuotaExceeded)
	}
	if err := writeFileAtomic(c.path, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.name, err)
	}
	c.records = next
	return nil
}

// Get returns the record with the given id.
func (c *Collection[T]) Get(id string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.records {
		if r.RecordID() == id {
			return r, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%s %s: %w", c.name, id, ErrNotFound)
}

// Find returns the first record matching the predicate.
func (c *Collection[T]) Find(match func(T) bool) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.records {
		if match(r) {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// All returns a copy of every record in insertion order.
func (c *Collection[T]) All() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.records))
	copy(out, c.records)
	return out
}

// Len returns the number of records.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place, creating parent directories as needed.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
