// Package memory is the in-memory record store, used by tests and as the
// zero-setup development backend.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/zayLatt25/receipt-app/internal/core"
	"github.com/zayLatt25/receipt-app/internal/store"
)

// ErrNotFound aliases the shared sentinel so callers holding only this
// package can still match it.
var ErrNotFound = store.ErrNotFound

// Store keeps everything behind one mutex. Reads hand out copies so a
// caller can never mutate a stored record.
type Store struct {
	mu         sync.Mutex
	records    []core.ExpenseRecord
	categories []string
	grocery    []core.GroceryItem
}

// New returns a store seeded with the predefined categories.
func New() *Store {
	return &Store{
		categories: append([]string(nil), core.PredefinedCategories...),
	}
}

// Append implements store.RecordWriter.
func (s *Store) Append(_ context.Context, r core.ExpenseRecord) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	r.ID = uuid.NewString()
	s.mu.Lock()
	s.records = append(s.records, r)
	s.mu.Unlock()
	return r.ID, nil
}

// Delete implements store.RecordDeleter.
func (s *Store) Delete(_ context.Context, id string) (core.ExpenseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return r, nil
		}
	}
	return core.ExpenseRecord{}, ErrNotFound
}

// ListByDate implements store.RecordReader.
func (s *Store) ListByDate(_ context.Context, date string) ([]core.ExpenseRecord, error) {
	return s.filter(func(r core.ExpenseRecord) bool { return r.Date == date }), nil
}

// ListByRange implements store.RecordReader.
func (s *Store) ListByRange(_ context.Context, start, end string) ([]core.ExpenseRecord, error) {
	return s.filter(func(r core.ExpenseRecord) bool { return r.Date >= start && r.Date <= end }), nil
}

// ListByMonth implements store.RecordReader.
func (s *Store) ListByMonth(_ context.Context, monthKey string) ([]core.ExpenseRecord, error) {
	return s.filter(func(r core.ExpenseRecord) bool { return core.InMonth(r.Date, monthKey) }), nil
}

// ListAll implements store.RecordReader.
func (s *Store) ListAll(_ context.Context) ([]core.ExpenseRecord, error) {
	return s.filter(func(core.ExpenseRecord) bool { return true }), nil
}

func (s *Store) filter(keep func(core.ExpenseRecord) bool) []core.ExpenseRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.ExpenseRecord
	for _, r := range s.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Categories implements store.TaxonomyReader.
func (s *Store) Categories(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.categories...), nil
}

// AddCategory implements store.TaxonomyWriter.
func (s *Store) AddCategory(_ context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	canonical, isNew := core.ResolveCategory(s.categories, name)
	if isNew {
		s.categories = append(s.categories, canonical)
	}
	return canonical, nil
}

// LoadGroceryList implements store.GroceryStore.
func (s *Store) LoadGroceryList(_ context.Context) ([]core.GroceryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.GroceryItem(nil), s.grocery...), nil
}

// SaveGroceryList implements store.GroceryStore.
func (s *Store) SaveGroceryList(_ context.Context, items []core.GroceryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grocery = append([]core.GroceryItem(nil), items...)
	return nil
}
