package stats

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/zayLatt25/receipt-app/internal/core"
)

// ChangeDirection is the qualitative week-over-week movement.
type ChangeDirection string

const (
	ChangeMore ChangeDirection = "more"
	ChangeLess ChangeDirection = "less"
	ChangeSame ChangeDirection = "same"
)

// WeeklySummary compares the current week's spend against the prior week.
//
// PercentageChange is the absolute delta relative to the prior week,
// rounded to one decimal place. When the prior week is zero and the current
// week is not, growth is unbounded: ChangeType reports "more" and
// PercentageChange is nil (omitted from JSON). It is never NaN or Inf.
type WeeklySummary struct {
	CurrentTotal     core.Money      `json:"current_total"`
	PriorTotal       core.Money      `json:"prior_total"`
	PercentageChange *float64        `json:"percentage_change,omitempty"`
	ChangeType       ChangeDirection `json:"change_type"`
	ExpenseCount     int             `json:"expense_count"`
	StartDate        string          `json:"start_date,omitempty"`
	EndDate          string          `json:"end_date,omitempty"`
}

// CompareWeeks computes the weekly summary from two pre-filtered record
// sets. It is a pure function: querying the two ranges, and falling back to
// a full fetch with local filtering when a range query fails, is the
// caller's job.
func CompareWeeks(currentWeek, priorWeek []core.ExpenseRecord) WeeklySummary {
	summary := WeeklySummary{
		ChangeType:   ChangeSame,
		ExpenseCount: len(currentWeek),
	}
	for _, r := range currentWeek {
		summary.CurrentTotal = summary.CurrentTotal.Add(r.Amount)
	}
	for _, r := range priorWeek {
		summary.PriorTotal = summary.PriorTotal.Add(r.Amount)
	}

	cur, prior := summary.CurrentTotal.Cents, summary.PriorTotal.Cents
	switch {
	case prior == 0 && cur == 0:
		zero := 0.0
		summary.PercentageChange = &zero
	case prior == 0:
		// Unbounded growth: direction only, no finite percentage.
		summary.ChangeType = ChangeMore
	default:
		delta := cur - prior
		switch {
		case delta > 0:
			summary.ChangeType = ChangeMore
		case delta < 0:
			summary.ChangeType = ChangeLess
			delta = -delta
		}
		pct, _ := decimal.NewFromInt(delta).
			Div(decimal.NewFromInt(prior)).
			Mul(decimal.NewFromInt(100)).
			Round(1).
			Float64()
		summary.PercentageChange = &pct
	}
	return summary
}

// SummaryMessage renders the push-notification text for a weekly summary,
// e.g. "This week you spent $42.50 - 12.5% less than last week (7 expenses)".
func SummaryMessage(s WeeklySummary) string {
	msg := fmt.Sprintf("This week you spent $%s", s.CurrentTotal)
	switch {
	case s.ChangeType == ChangeSame:
		msg += " - same as last week"
	case s.PercentageChange == nil && s.ChangeType == ChangeMore:
		msg += " - up from nothing last week"
	case s.ChangeType == ChangeMore:
		msg += fmt.Sprintf(" - %s%% more than last week", trimPercent(*s.PercentageChange))
	case s.ChangeType == ChangeLess:
		msg += fmt.Sprintf(" - %s%% less than last week", trimPercent(*s.PercentageChange))
	}
	if s.ExpenseCount > 0 {
		noun := "expenses"
		if s.ExpenseCount == 1 {
			noun = "expense"
		}
		msg += fmt.Sprintf(" (%d %s)", s.ExpenseCount, noun)
	}
	return msg
}

// trimPercent renders a one-decimal percentage without a trailing ".0".
func trimPercent(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	if len(s) > 2 && s[len(s)-2:] == ".0" {
		return s[:len(s)-2]
	}
	return s
}
