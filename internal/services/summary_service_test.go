package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zayLatt25/receipt-app/internal/core"
	"github.com/zayLatt25/receipt-app/internal/stats"
	"github.com/zayLatt25/receipt-app/internal/store/memory"
)

// flakyReader wraps the memory store so tests can break individual queries.
type flakyReader struct {
	*memory.Store
	failRange bool
	failDate  bool
	failAll   bool
}

var errStoreDown = errors.New("store down")

func (f *flakyReader) ListByRange(ctx context.Context, start, end string) ([]core.ExpenseRecord, error) {
	if f.failRange {
		return nil, errStoreDown
	}
	return f.Store.ListByRange(ctx, start, end)
}

func (f *flakyReader) ListByDate(ctx context.Context, date string) ([]core.ExpenseRecord, error) {
	if f.failDate {
		return nil, errStoreDown
	}
	return f.Store.ListByDate(ctx, date)
}

func (f *flakyReader) ListAll(ctx context.Context) ([]core.ExpenseRecord, error) {
	if f.failAll {
		return nil, errStoreDown
	}
	return f.Store.ListAll(ctx)
}

func seedRecord(t *testing.T, st *memory.Store, desc string, cents int64, category, date string) {
	t.Helper()
	_, err := st.Append(context.Background(), core.ExpenseRecord{
		Description: desc,
		Amount:      core.Money{Cents: cents},
		Category:    category,
		Date:        date,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func newSummaryFixture(t *testing.T) (*SummaryService, *flakyReader) {
	t.Helper()
	reader := &flakyReader{Store: memory.New()}
	months := stats.NewMonthCache(reader.ListByMonth)
	return NewSummaryService(reader, months), reader
}

func TestDaySummaryGroupsByCategory(t *testing.T) {
	svc, reader := newSummaryFixture(t)
	seedRecord(t, reader.Store, "Milk", 150, "Grocery", "2025-08-12")
	seedRecord(t, reader.Store, "Bus", 200, "Transport", "2025-08-12")
	seedRecord(t, reader.Store, "Bread", 300, "Grocery", "2025-08-12")
	seedRecord(t, reader.Store, "Other day", 999, "Grocery", "2025-08-13")

	got, err := svc.DaySummary(context.Background(), "2025-08-12")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(got.Sections))
	}
	if got.Sections[0].Title != "Grocery" || got.Sections[0].Total.Cents != 450 {
		t.Fatalf("first section = %+v", got.Sections[0])
	}
	if got.DayTotal.Cents != 650 {
		t.Fatalf("day total = %d cents, want 650", got.DayTotal.Cents)
	}
}

func TestDaySummaryRejectsBadDate(t *testing.T) {
	svc, _ := newSummaryFixture(t)
	if _, err := svc.DaySummary(context.Background(), "12/08/2025"); !errors.Is(err, core.ErrInvalidDate) {
		t.Fatalf("err = %v, want ErrInvalidDate", err)
	}
}

func TestDaySummaryDegradesToEmptyOnStoreError(t *testing.T) {
	svc, reader := newSummaryFixture(t)
	seedRecord(t, reader.Store, "Milk", 150, "Grocery", "2025-08-12")
	reader.failDate = true

	got, err := svc.DaySummary(context.Background(), "2025-08-12")
	if err != nil {
		t.Fatalf("store error surfaced: %v", err)
	}
	if len(got.Sections) != 0 || !got.DayTotal.IsZero() {
		t.Fatalf("summary not empty: %+v", got)
	}
}

func TestWeeklySummaryComparesRanges(t *testing.T) {
	svc, reader := newSummaryFixture(t)
	// Reference Wed 2025-08-20: current week Mon 18 - Sun 24, prior 11 - 17.
	seedRecord(t, reader.Store, "Lunch", 1000, "Eating Out", "2025-08-18")
	seedRecord(t, reader.Store, "Dinner", 2000, "Eating Out", "2025-08-20")
	seedRecord(t, reader.Store, "Old lunch", 2000, "Eating Out", "2025-08-12")
	seedRecord(t, reader.Store, "Ancient", 9999, "Eating Out", "2025-08-01")

	ref := time.Date(2025, 8, 20, 15, 0, 0, 0, time.UTC)
	got := svc.WeeklySummary(context.Background(), ref)

	if got.CurrentTotal.Cents != 3000 || got.PriorTotal.Cents != 2000 {
		t.Fatalf("totals = %d / %d", got.CurrentTotal.Cents, got.PriorTotal.Cents)
	}
	if got.ChangeType != stats.ChangeMore || got.ExpenseCount != 2 {
		t.Fatalf("summary = %+v", got)
	}
	if got.PercentageChange == nil || *got.PercentageChange != 50.0 {
		t.Fatalf("pct = %v, want 50.0", got.PercentageChange)
	}
	if got.StartDate != "2025-08-18" || got.EndDate != "2025-08-24" {
		t.Fatalf("window = %s - %s", got.StartDate, got.EndDate)
	}
}

func TestWeeklySummaryFallsBackToFullFetch(t *testing.T) {
	svc, reader := newSummaryFixture(t)
	seedRecord(t, reader.Store, "Lunch", 1000, "Eating Out", "2025-08-18")
	seedRecord(t, reader.Store, "Old lunch", 500, "Eating Out", "2025-08-12")
	reader.failRange = true

	got := svc.WeeklySummary(context.Background(), time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC))
	if got.CurrentTotal.Cents != 1000 || got.PriorTotal.Cents != 500 {
		t.Fatalf("fallback totals = %d / %d", got.CurrentTotal.Cents, got.PriorTotal.Cents)
	}
}

func TestWeeklySummaryEmptyWhenEverythingFails(t *testing.T) {
	svc, reader := newSummaryFixture(t)
	seedRecord(t, reader.Store, "Lunch", 1000, "Eating Out", "2025-08-18")
	reader.failRange = true
	reader.failAll = true

	got := svc.WeeklySummary(context.Background(), time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC))
	if !got.CurrentTotal.IsZero() || !got.PriorTotal.IsZero() {
		t.Fatalf("totals = %+v, want zero", got)
	}
	if got.ChangeType != stats.ChangeSame || got.ExpenseCount != 0 {
		t.Fatalf("summary = %+v", got)
	}
}

func TestMarkedDatesRefreshBypassesCache(t *testing.T) {
	svc, reader := newSummaryFixture(t)
	ctx := context.Background()

	markers, err := svc.MarkedDates(ctx, "2025-08", "", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(markers) != 0 {
		t.Fatalf("markers = %v, want none", markers)
	}

	// A write behind the cache's back stays invisible until refresh.
	seedRecord(t, reader.Store, "Milk", 150, "Grocery", "2025-08-12")
	markers, err = svc.MarkedDates(ctx, "2025-08", "", false)
	if err != nil {
		t.Fatal(err)
	}
	if markers["2025-08-12"].Marked {
		t.Fatal("cached month picked up uncached write")
	}

	markers, err = svc.MarkedDates(ctx, "2025-08", "2025-08-15", true)
	if err != nil {
		t.Fatal(err)
	}
	if !markers["2025-08-12"].Marked {
		t.Fatal("refresh did not replace the snapshot")
	}
	if !markers["2025-08-15"].Selected {
		t.Fatal("selection overlay missing")
	}
}

func TestYearlyTotals(t *testing.T) {
	svc, reader := newSummaryFixture(t)
	seedRecord(t, reader.Store, "Jan", 100, "Bills", "2025-01-10")
	seedRecord(t, reader.Store, "Aug a", 200, "Bills", "2025-08-01")
	seedRecord(t, reader.Store, "Aug b", 300, "Bills", "2025-08-31")
	seedRecord(t, reader.Store, "Other year", 999, "Bills", "2024-08-15")

	totals, err := svc.YearlyTotals(context.Background(), 2025)
	if err != nil {
		t.Fatal(err)
	}
	if totals[0].Cents != 100 || totals[7].Cents != 500 {
		t.Fatalf("totals = %v", totals)
	}
}

func TestMonthCategoryTotalsKeepsListOrder(t *testing.T) {
	svc, reader := newSummaryFixture(t)
	seedRecord(t, reader.Store, "Milk", 150, "Grocery", "2025-08-12")
	seedRecord(t, reader.Store, "Bus", 200, "Transport", "2025-08-13")

	got, err := svc.MonthCategoryTotals(context.Background(), "2025-08", []string{"Transport", "Grocery", "Health"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].Name != "Transport" || got[0].Amount.Cents != 200 {
		t.Fatalf("got[0] = %+v", got[0])
	}
	if got[2].Name != "Health" || !got[2].Amount.IsZero() {
		t.Fatalf("got[2] = %+v", got[2])
	}
}
