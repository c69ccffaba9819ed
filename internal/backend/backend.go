// Package backend selects and wires the record store implementation the
// rest of the application runs on.
package backend

import (
	"fmt"

	"github.com/zayLatt25/receipt-app/internal/store"
)

// Type identifies a store backend.
type Type string

const (
	MemoryBackend Type = "memory"
	SQLiteBackend Type = "sqlite"
)

func (t Type) IsValid() bool {
	return t == MemoryBackend || t == SQLiteBackend
}

func (t Type) String() string {
	return string(t)
}

// ParseType validates a backend name from configuration.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid backend type: %s", s)
	}
	return t, nil
}

// Stores bundles every port one backend provides. Both backends implement
// all of them, so the bundle is a plain struct rather than a union.
type Stores struct {
	Records interface {
		store.RecordReader
		store.RecordWriter
		store.RecordDeleter
	}
	Taxonomy interface {
		store.TaxonomyReader
		store.TaxonomyWriter
	}
	Grocery store.GroceryStore
}

// Result is a wired backend plus its teardown.
type Result struct {
	Stores  Stores
	Cleanup func() error
}
