package stats

import (
	"testing"

	"github.com/zayLatt25/receipt-app/internal/core"
)

func TestMonthlyTotals(t *testing.T) {
	in := []core.ExpenseRecord{
		rec("jan", 1000, "Bills", "2025-01-15"),
		rec("jan2", 500, "Grocery", "2025-01-20"),
		rec("aug", 2000, "Health", "2025-08-01"),
		rec("other year", 9999, "Bills", "2024-01-15"),
		rec("malformed", 9999, "Bills", "bogus"),
	}
	totals := MonthlyTotals(in, 2025)

	if totals[0].String() != "15.00" {
		t.Errorf("january = %s, want 15.00", totals[0])
	}
	if totals[7].String() != "20.00" {
		t.Errorf("august = %s, want 20.00", totals[7])
	}
	for i, m := range totals {
		if i != 0 && i != 7 && !m.IsZero() {
			t.Errorf("month %d = %s, want 0.00", i+1, m)
		}
	}
}

func TestCategoryTotals(t *testing.T) {
	in := []core.ExpenseRecord{
		rec("a", 1000, "Grocery", "2025-08-01"),
		rec("b", 500, "Grocery", "2025-08-02"),
		rec("c", 750, "Health", "2025-08-03"),
		rec("d", 9999, "Not A Chart Slice", "2025-08-04"),
	}
	got := CategoryTotals(in, core.PredefinedCategories)

	if len(got) != len(core.PredefinedCategories) {
		t.Fatalf("slices = %d, want %d", len(got), len(core.PredefinedCategories))
	}
	byName := map[string]core.Money{}
	for _, ca := range got {
		byName[ca.Name] = ca.Amount
	}
	if byName["Grocery"].String() != "15.00" {
		t.Errorf("Grocery = %s, want 15.00", byName["Grocery"])
	}
	if byName["Health"].String() != "7.50" {
		t.Errorf("Health = %s, want 7.50", byName["Health"])
	}
	if !byName["Bills"].IsZero() {
		t.Errorf("Bills = %s, want zero slice kept for stable legend", byName["Bills"])
	}
	// Order mirrors the category list.
	if got[0].Name != core.PredefinedCategories[0] {
		t.Errorf("first slice = %s, want %s", got[0].Name, core.PredefinedCategories[0])
	}
}
