package core

import (
	"errors"
	"strings"
	"testing"
)

func TestExpenseRecordValidate(t *testing.T) {
	valid := ExpenseRecord{
		Description: "Lunch",
		Amount:      Money{Cents: 1250},
		Category:    "Eating Out",
		Date:        "2025-08-28",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(r *ExpenseRecord)
		wantErr error
	}{
		{"empty description", func(r *ExpenseRecord) { r.Description = "  " }, ErrEmptyDescription},
		{"zero amount", func(r *ExpenseRecord) { r.Amount = Money{} }, ErrInvalidAmount},
		{"negative amount", func(r *ExpenseRecord) { r.Amount = Money{Cents: -5} }, ErrInvalidAmount},
		{"bad date", func(r *ExpenseRecord) { r.Date = "2025-02-30" }, ErrInvalidDate},
		{"timestamp instead of date", func(r *ExpenseRecord) { r.Date = "2025-08-28T10:00:00Z" }, ErrInvalidDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := valid
			tc.mutate(&r)
			if err := r.Validate(); !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}

	long := valid
	long.Description = strings.Repeat("x", 201)
	if err := long.Validate(); err == nil {
		t.Error("expected error for oversized description")
	}
}

func TestCanonicalize(t *testing.T) {
	r := ExpenseRecord{Description: " Coffee ", Category: "", Amount: Money{Cents: 300}, Date: "2025-08-28"}
	got := r.Canonicalize()
	if got.Category != Uncategorized {
		t.Errorf("empty category = %q, want %q", got.Category, Uncategorized)
	}
	if got.Description != "Coffee" {
		t.Errorf("description not trimmed: %q", got.Description)
	}
	// Input record untouched.
	if r.Category != "" {
		t.Error("Canonicalize mutated its receiver value's origin")
	}

	neg := ExpenseRecord{Description: "bad row", Category: "Bills", Amount: Money{Cents: -100}, Date: "2025-08-28"}
	if got := neg.Canonicalize(); !got.Amount.IsZero() {
		t.Errorf("negative amount coerced to %v, want zero", got.Amount)
	}
}

func TestCanonicalizeAll(t *testing.T) {
	in := []ExpenseRecord{
		{Description: "a", Category: " ", Amount: Money{Cents: 100}},
		{Description: "b", Category: "Health", Amount: Money{Cents: 200}},
	}
	out := CanonicalizeAll(in)
	if len(out) != 2 {
		t.Fatalf("len = %d", len(out))
	}
	if out[0].Category != Uncategorized || out[1].Category != "Health" {
		t.Errorf("categories = %q, %q", out[0].Category, out[1].Category)
	}
	if in[0].Category != " " {
		t.Error("input slice was mutated")
	}
	if CanonicalizeAll(nil) != nil {
		t.Error("nil input should return nil")
	}
}

func TestGroceryTotal(t *testing.T) {
	items := []GroceryItem{
		{Name: "Milk", Pieces: 2, Price: Money{Cents: 150}},  // 3.00
		{Name: "Eggs", Pieces: 1, Price: Money{Cents: 420}},  // 4.20
		{Name: "", Pieces: 0, Price: Money{Cents: 999}},      // empty trailing row
		{Name: "Bad", Pieces: -3, Price: Money{Cents: 100}},  // skipped
	}
	if got := GroceryTotal(items); got.String() != "7.20" {
		t.Fatalf("total = %s, want 7.20", got)
	}
	if got := GroceryTotal(nil); !got.IsZero() {
		t.Fatalf("empty list total = %s, want 0.00", got)
	}
}
