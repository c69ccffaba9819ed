package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zayLatt25/receipt-app/internal/core"
	"github.com/zayLatt25/receipt-app/internal/stats"
	"github.com/zayLatt25/receipt-app/internal/store"
)

// SummaryService sits in front of the aggregation engine: it fetches
// record snapshots from the store, canonicalizes them, and hands them to
// the pure reducers in the stats package. Read failures degrade to empty
// result sets so the summary surfaces render "no expenses" instead of an
// error page.
type SummaryService struct {
	records store.RecordReader
	months  *stats.MonthCache
}

func NewSummaryService(records store.RecordReader, months *stats.MonthCache) *SummaryService {
	return &SummaryService{records: records, months: months}
}

// DaySummary returns the category-grouped breakdown for one day.
func (s *SummaryService) DaySummary(ctx context.Context, date string) (stats.DaySummary, error) {
	if err := core.ValidateDate(date); err != nil {
		return stats.DaySummary{}, fmt.Errorf("date %q: %w", date, err)
	}

	records, err := s.records.ListByDate(ctx, date)
	if err != nil {
		slog.ErrorContext(ctx, "Day query failed, rendering empty summary",
			"date", date, "error", err)
		records = nil
	}
	return stats.AggregateByCategory(core.CanonicalizeAll(records)), nil
}

// MarkedDates returns the calendar marker map for a month. When refresh is
// set the cached snapshot is bypassed and replaced first.
func (s *SummaryService) MarkedDates(ctx context.Context, monthKey, selectedDate string, refresh bool) (map[string]stats.DateMarker, error) {
	if refresh {
		if _, err := s.months.Refresh(ctx, monthKey); err != nil {
			return nil, err
		}
	}
	return s.months.MarkedDates(ctx, monthKey, selectedDate)
}

// WeeklySummary compares the reference day's Monday-to-Sunday week against
// the week before it. The two ranges are fetched concurrently; if either
// query fails the service falls back to one full fetch filtered locally,
// and if that fails too the comparison runs on empty sets.
func (s *SummaryService) WeeklySummary(ctx context.Context, ref time.Time) stats.WeeklySummary {
	current := core.CurrentWeek(ref)
	prior := core.PriorWeek(ref)

	currentRecords, priorRecords, err := s.fetchWeeks(ctx, current, prior)
	if err != nil {
		slog.WarnContext(ctx, "Week range query failed, falling back to full fetch",
			"error", err)
		currentRecords, priorRecords = s.fetchWeeksFromAll(ctx, current, prior)
	}

	summary := stats.CompareWeeks(
		core.CanonicalizeAll(currentRecords),
		core.CanonicalizeAll(priorRecords),
	)
	summary.StartDate = current.Start
	summary.EndDate = current.End
	return summary
}

func (s *SummaryService) fetchWeeks(ctx context.Context, current, prior core.WeekWindow) (currentRecords, priorRecords []core.ExpenseRecord, err error) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		currentRecords, err = s.records.ListByRange(ctx, current.Start, current.End)
		return err
	})
	g.Go(func() error {
		var err error
		priorRecords, err = s.records.ListByRange(ctx, prior.Start, prior.End)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return currentRecords, priorRecords, nil
}

func (s *SummaryService) fetchWeeksFromAll(ctx context.Context, current, prior core.WeekWindow) (currentRecords, priorRecords []core.ExpenseRecord) {
	all, err := s.records.ListAll(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Full fetch failed, weekly summary runs on empty sets",
			"error", err)
		return nil, nil
	}
	for _, r := range all {
		switch {
		case current.Contains(r.Date):
			currentRecords = append(currentRecords, r)
		case prior.Contains(r.Date):
			priorRecords = append(priorRecords, r)
		}
	}
	return currentRecords, priorRecords
}

// YearlyTotals returns the twelve per-month totals for one year.
func (s *SummaryService) YearlyTotals(ctx context.Context, year int) ([12]core.Money, error) {
	all, err := s.records.ListAll(ctx)
	if err != nil {
		return [12]core.Money{}, fmt.Errorf("list records: %w", err)
	}
	return stats.MonthlyTotals(core.CanonicalizeAll(all), year), nil
}

// MonthCategoryTotals returns the month's spend broken down over the given
// category list, in that list's order.
func (s *SummaryService) MonthCategoryTotals(ctx context.Context, monthKey string, categories []string) ([]stats.CategoryAmount, error) {
	records, err := s.months.Records(ctx, monthKey)
	if err != nil {
		return nil, err
	}
	return stats.CategoryTotals(records, categories), nil
}
