package stats

import (
	"math"
	"testing"

	"github.com/zayLatt25/receipt-app/internal/core"
)

func week(cents ...int64) []core.ExpenseRecord {
	out := make([]core.ExpenseRecord, len(cents))
	for i, c := range cents {
		out[i] = rec("r", c, "Grocery", "2025-08-25")
	}
	return out
}

func TestCompareWeeksBothEmpty(t *testing.T) {
	got := CompareWeeks(nil, nil)
	if !got.CurrentTotal.IsZero() || !got.PriorTotal.IsZero() {
		t.Errorf("totals = %s / %s, want zero", got.CurrentTotal, got.PriorTotal)
	}
	if got.ChangeType != ChangeSame {
		t.Errorf("change type = %s, want same", got.ChangeType)
	}
	if got.PercentageChange == nil || *got.PercentageChange != 0 {
		t.Errorf("percentage = %v, want 0", got.PercentageChange)
	}
	if got.ExpenseCount != 0 {
		t.Errorf("count = %d, want 0", got.ExpenseCount)
	}
}

func TestCompareWeeksDirections(t *testing.T) {
	cases := []struct {
		name       string
		cur, prior []core.ExpenseRecord
		changeType ChangeDirection
		pct        float64
	}{
		{"more", week(15000), week(10000), ChangeMore, 50.0},
		{"less", week(10000), week(15000), ChangeLess, 33.3},
		{"equal", week(5000), week(5000), ChangeSame, 0.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CompareWeeks(tc.cur, tc.prior)
			if got.ChangeType != tc.changeType {
				t.Fatalf("change type = %s, want %s", got.ChangeType, tc.changeType)
			}
			if got.PercentageChange == nil {
				t.Fatal("percentage missing")
			}
			if *got.PercentageChange != tc.pct {
				t.Fatalf("percentage = %v, want %v", *got.PercentageChange, tc.pct)
			}
		})
	}
}

// Prior week at zero with current spend: direction reported, percentage
// omitted, and never NaN or Inf.
func TestCompareWeeksDivisionByZero(t *testing.T) {
	got := CompareWeeks(week(5000), nil)
	if got.ChangeType != ChangeMore {
		t.Fatalf("change type = %s, want more", got.ChangeType)
	}
	if got.PercentageChange != nil {
		if math.IsNaN(*got.PercentageChange) || math.IsInf(*got.PercentageChange, 0) {
			t.Fatalf("percentage = %v, must be finite", *got.PercentageChange)
		}
		t.Fatalf("percentage = %v, want omitted", *got.PercentageChange)
	}
}

func TestCompareWeeksCountsCurrentOnly(t *testing.T) {
	got := CompareWeeks(week(100, 200, 300), week(400, 500))
	if got.ExpenseCount != 3 {
		t.Fatalf("count = %d, want 3 (current week only)", got.ExpenseCount)
	}
	if got.CurrentTotal.String() != "6.00" || got.PriorTotal.String() != "9.00" {
		t.Fatalf("totals = %s / %s", got.CurrentTotal, got.PriorTotal)
	}
}

func TestCompareWeeksRoundsToOneDecimal(t *testing.T) {
	// 100 vs 300: |100-300|/300*100 = 66.666... -> 66.7
	got := CompareWeeks(week(10000), week(30000))
	if got.PercentageChange == nil || *got.PercentageChange != 66.7 {
		t.Fatalf("percentage = %v, want 66.7", got.PercentageChange)
	}
}

func TestSummaryMessage(t *testing.T) {
	pct := func(v float64) *float64 { return &v }
	money := func(cents int64) core.Money { return core.Money{Cents: cents} }

	cases := []struct {
		name    string
		summary WeeklySummary
		want    string
	}{
		{
			"same as last week",
			WeeklySummary{CurrentTotal: money(4250), ChangeType: ChangeSame, PercentageChange: pct(0), ExpenseCount: 7},
			"This week you spent $42.50 - same as last week (7 expenses)",
		},
		{
			"more with percentage",
			WeeklySummary{CurrentTotal: money(15000), ChangeType: ChangeMore, PercentageChange: pct(50.0), ExpenseCount: 2},
			"This week you spent $150.00 - 50% more than last week (2 expenses)",
		},
		{
			"less with decimal",
			WeeklySummary{CurrentTotal: money(10000), ChangeType: ChangeLess, PercentageChange: pct(33.3), ExpenseCount: 1},
			"This week you spent $100.00 - 33.3% less than last week (1 expense)",
		},
		{
			"unbounded growth",
			WeeklySummary{CurrentTotal: money(5000), ChangeType: ChangeMore, ExpenseCount: 3},
			"This week you spent $50.00 - up from nothing last week (3 expenses)",
		},
		{
			"no expenses",
			WeeklySummary{ChangeType: ChangeSame, PercentageChange: pct(0)},
			"This week you spent $0.00 - same as last week",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SummaryMessage(tc.summary); got != tc.want {
				t.Fatalf("message = %q\nwant      %q", got, tc.want)
			}
		})
	}
}
