package core

import (
	"errors"
	"strings"
)

// Uncategorized is the bucket every record without a category falls into.
// Canonicalize guarantees no record reaches the aggregation code with an
// empty category, so downstream grouping never has to re-check.
const Uncategorized = "Uncategorized"

type (
	// ExpenseRecord is one dated, categorized, positive-amount monetary entry.
	// The ID is assigned by the store on creation and is opaque to everything
	// else. Records are never mutated after they reach the aggregation code.
	ExpenseRecord struct {
		ID          string `json:"id,omitempty"`
		Description string `json:"description"`
		Amount      Money  `json:"amount"`
		Category    string `json:"category"`
		Date        string `json:"date"` // YYYY-MM-DD
	}

	// GroceryItem is one row of the shared grocery list.
	GroceryItem struct {
		Name   string `json:"name"`
		Pieces int64  `json:"pcs"`
		Price  Money  `json:"price"`
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidDate        = errors.New("invalid date")
	ErrEmptyDescription   = errors.New("empty description")
	ErrEmptyCategory      = errors.New("empty category")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
)

// Validate enforces the creation-time invariants: non-empty description,
// strictly positive amount, well-formed date. Aggregation code never
// re-validates; it only defends against missing categories.
func (r ExpenseRecord) Validate() error {
	if len(strings.TrimSpace(r.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(r.Description) > 200 {
		return ErrDescriptionTooLong
	}
	if r.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	return ValidateDate(r.Date)
}

// Canonicalize returns the record with whitespace trimmed and a missing or
// blank category replaced by Uncategorized. Every record read back from a
// store passes through here once, on ingestion, so the rest of the engine
// can assume category is a non-empty string.
func (r ExpenseRecord) Canonicalize() ExpenseRecord {
	r.Description = strings.TrimSpace(r.Description)
	r.Category = strings.TrimSpace(r.Category)
	if r.Category == "" {
		r.Category = Uncategorized
	}
	if r.Amount.Cents < 0 {
		// One bad record must not poison the totals of many.
		r.Amount = Money{}
	}
	return r
}

// CanonicalizeAll normalizes a store snapshot without touching the input slice.
func CanonicalizeAll(records []ExpenseRecord) []ExpenseRecord {
	if len(records) == 0 {
		return nil
	}
	out := make([]ExpenseRecord, len(records))
	for i, r := range records {
		out[i] = r.Canonicalize()
	}
	return out
}

// GroceryTotal sums a grocery list, pieces times unit price per row.
// Rows with negative piece counts are skipped.
func GroceryTotal(items []GroceryItem) Money {
	var cents int64
	for _, it := range items {
		if it.Pieces < 0 {
			continue
		}
		cents += it.Pieces * it.Price.Cents
	}
	return Money{Cents: cents}
}
