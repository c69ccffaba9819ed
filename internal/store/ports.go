// Package store defines the ports the aggregation engine's collaborators
// use to reach the expense record store, whichever backend implements it.
package store

import (
	"context"
	"errors"

	"github.com/zayLatt25/receipt-app/internal/core"
)

// ErrNotFound is returned by any backend when a record ID does not exist.
var ErrNotFound = errors.New("record not found")

type (
	// RecordReader issues the snapshot queries the summaries are built from.
	// Range bounds are inclusive YYYY-MM-DD strings; comparison is
	// lexicographic, which matches chronology for the fixed-width format.
	RecordReader interface {
		// ListByDate returns every record dated exactly date.
		ListByDate(ctx context.Context, date string) ([]core.ExpenseRecord, error)
		// ListByRange returns every record with start <= date <= end.
		ListByRange(ctx context.Context, start, end string) ([]core.ExpenseRecord, error)
		// ListByMonth returns every record inside the YYYY-MM month key.
		ListByMonth(ctx context.Context, monthKey string) ([]core.ExpenseRecord, error)
		// ListAll returns the full snapshot, the fallback when a range
		// query fails and for the yearly statistics.
		ListAll(ctx context.Context) ([]core.ExpenseRecord, error)
	}

	// RecordWriter persists a new record and assigns its ID.
	RecordWriter interface {
		Append(ctx context.Context, r core.ExpenseRecord) (id string, err error)
	}

	// RecordDeleter removes a record by ID, returning the deleted record so
	// callers can invalidate the right month.
	RecordDeleter interface {
		Delete(ctx context.Context, id string) (core.ExpenseRecord, error)
	}

	// TaxonomyReader lists the known categories, predefined plus
	// user-added, in a stable order.
	TaxonomyReader interface {
		Categories(ctx context.Context) ([]string, error)
	}

	// TaxonomyWriter adds a category, deduplicating case-insensitively.
	// The returned name is the canonical spelling (the existing one on a
	// case-insensitive match).
	TaxonomyWriter interface {
		AddCategory(ctx context.Context, name string) (string, error)
	}

	// GroceryStore persists the grocery list wholesale, document style:
	// a save replaces the whole list.
	GroceryStore interface {
		LoadGroceryList(ctx context.Context) ([]core.GroceryItem, error)
		SaveGroceryList(ctx context.Context, items []core.GroceryItem) error
	}
)
