package stats

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/zayLatt25/receipt-app/internal/core"
)

// FetchMonthFunc loads every record of one month from the store. The cache
// canonicalizes whatever comes back, so the fetcher can return the raw
// snapshot as-is.
type FetchMonthFunc func(ctx context.Context, monthKey string) ([]core.ExpenseRecord, error)

// MonthCache memoizes month snapshots for the lifetime of a session, so
// paging the calendar costs at most one store query per distinct month.
// Each key is either absent or populated; a mutation moves a populated key
// back through Refresh (or drops it via Invalidate) so the calendar dots
// update immediately.
//
// Concurrent requests for the same uncached month share one underlying
// fetch through singleflight instead of racing.
type MonthCache struct {
	fetch FetchMonthFunc

	mu     sync.Mutex
	months map[string][]core.ExpenseRecord
	group  singleflight.Group
}

// NewMonthCache builds a cache around the given fetch function.
func NewMonthCache(fetch FetchMonthFunc) *MonthCache {
	return &MonthCache{
		fetch:  fetch,
		months: make(map[string][]core.ExpenseRecord),
	}
}

// Records returns the month's snapshot, fetching it on first use.
func (c *MonthCache) Records(ctx context.Context, monthKey string) ([]core.ExpenseRecord, error) {
	if err := core.ValidateMonthKey(monthKey); err != nil {
		return nil, fmt.Errorf("month key %q: %w", monthKey, err)
	}

	c.mu.Lock()
	records, ok := c.months[monthKey]
	c.mu.Unlock()
	if ok {
		return records, nil
	}

	v, err, _ := c.group.Do(monthKey, func() (any, error) {
		raw, err := c.fetch(ctx, monthKey)
		if err != nil {
			return nil, err
		}
		records := core.CanonicalizeAll(raw)
		c.mu.Lock()
		c.months[monthKey] = records
		c.mu.Unlock()
		return records, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch month %s: %w", monthKey, err)
	}
	return v.([]core.ExpenseRecord), nil
}

// MarkedDates returns the calendar marker map for a month, using the cached
// snapshot when present.
func (c *MonthCache) MarkedDates(ctx context.Context, monthKey, selectedDate string) (map[string]DateMarker, error) {
	records, err := c.Records(ctx, monthKey)
	if err != nil {
		return nil, err
	}
	return BuildMarkers(monthKey, records, selectedDate), nil
}

// Refresh force-refetches a month, bypassing and replacing any cached
// snapshot. Called after an add or delete touching the month. A refresh
// that loses a race with another writer simply leaves stale-but-consistent
// data that the next mutation replaces.
func (c *MonthCache) Refresh(ctx context.Context, monthKey string) ([]core.ExpenseRecord, error) {
	if err := core.ValidateMonthKey(monthKey); err != nil {
		return nil, fmt.Errorf("month key %q: %w", monthKey, err)
	}
	raw, err := c.fetch(ctx, monthKey)
	if err != nil {
		return nil, fmt.Errorf("refresh month %s: %w", monthKey, err)
	}
	records := core.CanonicalizeAll(raw)
	c.mu.Lock()
	c.months[monthKey] = records
	c.mu.Unlock()
	return records, nil
}

// Invalidate drops a month's entry; the next read fetches fresh.
func (c *MonthCache) Invalidate(monthKey string) {
	c.mu.Lock()
	delete(c.months, monthKey)
	c.mu.Unlock()
}

// Len reports how many months are currently populated.
func (c *MonthCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.months)
}
