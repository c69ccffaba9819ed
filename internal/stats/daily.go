// Package stats turns raw expense snapshots into display-ready summaries:
// per-day category sections, per-month calendar markers, week-over-week
// spending comparisons, and the yearly chart series. Everything here is a
// pure transformation over already-fetched records; the one exception is
// MonthCache, which memoizes month snapshots for the session.
package stats

import (
	"github.com/zayLatt25/receipt-app/internal/core"
)

// CategorySection is a named group of records sharing a category, with a
// subtotal. Section order is first-seen order while scanning the input, not
// alphabetical: the list reads in the order the user logged things.
type CategorySection struct {
	Title string               `json:"title"`
	Items []core.ExpenseRecord `json:"items"`
	Total core.Money           `json:"total"`
}

// DaySummary is the result of grouping one day's records.
type DaySummary struct {
	Sections []CategorySection `json:"sections"`
	DayTotal core.Money        `json:"day_total"`
}

// AggregateByCategory groups one day's records by category. The caller is
// responsible for filtering to a single day; this function only groups.
//
// DayTotal is computed in an independent pass over the input rather than by
// summing section subtotals. With integer cents both routes agree, but the
// contract is that the grand total depends only on the input list.
func AggregateByCategory(records []core.ExpenseRecord) DaySummary {
	var summary DaySummary
	if len(records) == 0 {
		return summary
	}

	index := make(map[string]int, 8)
	for _, r := range records {
		// Records are canonicalized on ingestion, but a missing category
		// must never leak into a section title.
		title := r.Category
		if title == "" {
			title = core.Uncategorized
		}
		i, ok := index[title]
		if !ok {
			i = len(summary.Sections)
			index[title] = i
			summary.Sections = append(summary.Sections, CategorySection{Title: title})
		}
		summary.Sections[i].Items = append(summary.Sections[i].Items, r)
		summary.Sections[i].Total = summary.Sections[i].Total.Add(r.Amount)
	}

	for _, r := range records {
		summary.DayTotal = summary.DayTotal.Add(r.Amount)
	}
	return summary
}
