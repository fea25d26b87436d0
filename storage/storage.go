// Package storage holds the durable key/value backends the trade journal
// snapshots its state into.
package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Load when nothing has been saved under the key.
var ErrNotFound = errors.New("storage: key not found")

// Storage is a namespaced blob store. Each Save replaces the whole value.
type Storage interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
	Close() error
}

// Open returns the backend for kind ("file", "sqlite" or "memory").
// path is a directory for file storage and a database file for sqlite.
func Open(kind, path string) (Storage, error) {
	switch kind {
	case "file":
		return NewFile(path)
	case "sqlite":
		return NewSQLite(path)
	case "memory":
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown storage type %q", kind)
}
