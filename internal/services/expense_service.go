package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zayLatt25/receipt-app/internal/amqp"
	"github.com/zayLatt25/receipt-app/internal/core"
	"github.com/zayLatt25/receipt-app/internal/stats"
	"github.com/zayLatt25/receipt-app/internal/store"
)

// EventPublisher publishes record mutation events. Satisfied by
// *amqp.Client; nil disables publishing.
type EventPublisher interface {
	PublishRecordEvent(ctx context.Context, id, monthKey, action string) error
}

// ExpenseService owns record mutations: it validates, persists, refreshes
// the month marker cache so the calendar dot updates immediately, and
// announces the mutation on the event queue. The store write is the only
// step that can fail the request; everything after is local-first.
type ExpenseService struct {
	writer  store.RecordWriter
	deleter store.RecordDeleter
	months  *stats.MonthCache
	events  EventPublisher
}

func NewExpenseService(writer store.RecordWriter, deleter store.RecordDeleter, months *stats.MonthCache, events EventPublisher) *ExpenseService {
	return &ExpenseService{
		writer:  writer,
		deleter: deleter,
		months:  months,
		events:  events,
	}
}

// Create validates and persists a new record.
func (s *ExpenseService) Create(ctx context.Context, r core.ExpenseRecord) (string, error) {
	r = r.Canonicalize()
	if err := r.Validate(); err != nil {
		return "", err
	}

	id, err := s.writer.Append(ctx, r)
	if err != nil {
		return "", fmt.Errorf("save expense: %w", err)
	}

	s.afterMutation(ctx, id, core.MonthKeyOf(r.Date), amqp.ActionCreated)
	return id, nil
}

// Delete removes a record by ID and returns the removed record so callers
// can invalidate whatever they derived from its date.
func (s *ExpenseService) Delete(ctx context.Context, id string) (core.ExpenseRecord, error) {
	rec, err := s.deleter.Delete(ctx, id)
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("delete expense: %w", err)
	}

	s.afterMutation(ctx, id, core.MonthKeyOf(rec.Date), amqp.ActionDeleted)
	return rec, nil
}

// afterMutation forces the month snapshot fresh and publishes the event.
// Neither step may fail the request: the write already succeeded, and a
// stale dot or a missed export beats a spurious error to the user.
func (s *ExpenseService) afterMutation(ctx context.Context, id, monthKey, action string) {
	if s.months != nil && monthKey != "" {
		if _, err := s.months.Refresh(ctx, monthKey); err != nil {
			slog.WarnContext(ctx, "Month cache refresh failed after mutation",
				"month_key", monthKey, "error", err)
		}
	}
	if s.events == nil {
		return
	}
	if err := s.events.PublishRecordEvent(ctx, id, monthKey, action); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record event",
			"id", id, "action", action, "error", err)
	}
}
