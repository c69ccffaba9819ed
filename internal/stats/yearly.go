package stats

import (
	"fmt"

	"github.com/zayLatt25/receipt-app/internal/core"
)

// CategoryAmount is one slice of the month's category breakdown chart.
type CategoryAmount struct {
	Name   string     `json:"name"`
	Amount core.Money `json:"amount"`
}

// MonthlyTotals reduces a full record snapshot to twelve per-month totals
// for one year, the series behind the profile bar chart. Records outside
// the year, or with malformed dates, are ignored.
func MonthlyTotals(records []core.ExpenseRecord, year int) [12]core.Money {
	var totals [12]core.Money
	prefix := fmt.Sprintf("%04d-", year)
	for _, r := range records {
		if len(r.Date) < len(core.MonthLayout) || r.Date[:5] != prefix {
			continue
		}
		month := int(r.Date[5]-'0')*10 + int(r.Date[6]-'0')
		if month < 1 || month > 12 {
			continue
		}
		totals[month-1] = totals[month-1].Add(r.Amount)
	}
	return totals
}

// CategoryTotals reduces one month's records to a breakdown over the given
// category list, in that list's order. Categories with no spend appear with
// a zero amount so the pie chart keeps a stable legend; records in
// categories not listed are left out, as the chart only shows known slices.
func CategoryTotals(records []core.ExpenseRecord, categories []string) []CategoryAmount {
	index := make(map[string]int, len(categories))
	out := make([]CategoryAmount, len(categories))
	for i, c := range categories {
		index[c] = i
		out[i] = CategoryAmount{Name: c}
	}
	for _, r := range records {
		if i, ok := index[r.Category]; ok {
			out[i].Amount = out[i].Amount.Add(r.Amount)
		}
	}
	return out
}
