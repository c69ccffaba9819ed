package stats

import (
	"github.com/zayLatt25/receipt-app/internal/core"
)

// DateMarker is the visual state of one calendar day: a dot when the day
// has expenses, a ring when it is the selected day. Both can be set on the
// same entry; dates with neither get no entry at all.
type DateMarker struct {
	Marked   bool `json:"marked,omitempty"`
	Selected bool `json:"selected,omitempty"`
}

// BuildMarkers builds the calendar marker map for one month from that
// month's records. Records outside the month are ignored defensively.
//
// The selection overlay is applied only when selectedDate falls inside
// monthKey: paging the calendar to a month that does not contain the
// selected day shows expense dots only. When the selected day does have
// expenses, the dot and the ring are merged into one entry.
func BuildMarkers(monthKey string, records []core.ExpenseRecord, selectedDate string) map[string]DateMarker {
	markers := make(map[string]DateMarker, len(records)+1)
	for _, r := range records {
		if !core.InMonth(r.Date, monthKey) {
			continue
		}
		m := markers[r.Date]
		m.Marked = true
		markers[r.Date] = m
	}
	if core.InMonth(selectedDate, monthKey) {
		m := markers[selectedDate]
		m.Selected = true
		markers[selectedDate] = m
	}
	return markers
}
