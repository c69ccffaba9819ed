package core

import (
	"fmt"
	"strings"
	"time"
)

// Dates travel through the system as fixed-width YYYY-MM-DD strings, so
// lexicographic order is chronological order and every range query is a
// plain string comparison. Month keys are the YYYY-MM prefix.

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// ValidateDate checks that s is a real calendar date in YYYY-MM-DD form.
func ValidateDate(s string) error {
	if len(s) != len(DateLayout) {
		return ErrInvalidDate
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// ValidateMonthKey checks that s is a YYYY-MM month key.
func ValidateMonthKey(s string) error {
	if len(s) != len(MonthLayout) {
		return ErrInvalidDate
	}
	if _, err := time.Parse(MonthLayout, s); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// MonthKeyOf returns the YYYY-MM prefix of a date string.
func MonthKeyOf(date string) string {
	if len(date) < len(MonthLayout) {
		return ""
	}
	return date[:len(MonthLayout)]
}

// InMonth reports whether date falls inside the given month key.
func InMonth(date, monthKey string) bool {
	return monthKey != "" && strings.HasPrefix(date, monthKey+"-")
}

// MonthRange returns the first and last date of a month, both inclusive.
func MonthRange(monthKey string) (start, end string, err error) {
	t, err := time.Parse(MonthLayout, monthKey)
	if err != nil {
		return "", "", ErrInvalidDate
	}
	first := t
	last := t.AddDate(0, 1, -1)
	return first.Format(DateLayout), last.Format(DateLayout), nil
}

// FormatDate renders a time as a date string, dropping the time component.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// WeekWindow is an inclusive Monday-to-Sunday date range.
type WeekWindow struct {
	Start string // Monday
	End   string // Sunday
}

// CurrentWeek returns the 7-day window starting the most recent Monday on
// or before the reference day.
func CurrentWeek(ref time.Time) WeekWindow {
	wd := int(ref.Weekday())
	if wd == 0 {
		wd = 7 // Sunday belongs to the week that started six days earlier
	}
	monday := ref.AddDate(0, 0, 1-wd)
	return WeekWindow{
		Start: monday.Format(DateLayout),
		End:   monday.AddDate(0, 0, 6).Format(DateLayout),
	}
}

// PriorWeek returns the 7 days immediately preceding the current week.
func PriorWeek(ref time.Time) WeekWindow {
	cur := CurrentWeek(ref)
	monday, _ := time.Parse(DateLayout, cur.Start)
	prior := monday.AddDate(0, 0, -7)
	return WeekWindow{
		Start: prior.Format(DateLayout),
		End:   prior.AddDate(0, 0, 6).Format(DateLayout),
	}
}

// Contains reports whether date falls inside the window. Comparison is
// lexicographic, valid because the format is fixed width.
func (w WeekWindow) Contains(date string) bool {
	return date >= w.Start && date <= w.End
}

// Label renders the window for logs and notification text, e.g.
// "Aug 18 - 24, 2025" or "Dec 29, 2025 - Jan 4, 2026".
func (w WeekWindow) Label() string {
	start, err1 := time.Parse(DateLayout, w.Start)
	end, err2 := time.Parse(DateLayout, w.End)
	if err1 != nil || err2 != nil {
		return w.Start + " - " + w.End
	}
	switch {
	case start.Month() == end.Month() && start.Year() == end.Year():
		return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("2, 2006"))
	case start.Year() == end.Year():
		return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
	default:
		return fmt.Sprintf("%s - %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
	}
}
