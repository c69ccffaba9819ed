// Package worker holds the background jobs that run off the request path:
// mirroring created records to the spreadsheet export and publishing the
// periodic weekly summary notification.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zayLatt25/receipt-app/internal/amqp"
	"github.com/zayLatt25/receipt-app/internal/core"
	"github.com/zayLatt25/receipt-app/internal/store"
)

// RecordExporter mirrors one record to the external spreadsheet. Satisfied
// by *sheets.Exporter.
type RecordExporter interface {
	AppendRecord(ctx context.Context, r core.ExpenseRecord) error
}

// EventConsumer delivers record events to a handler until the context ends.
// Satisfied by *amqp.Client.
type EventConsumer interface {
	ConsumeRecordEvents(ctx context.Context, handler func(*amqp.RecordEventMessage) error) error
}

// ExportWorker consumes record events and appends created records to the
// spreadsheet. Deletions are acknowledged but not mirrored: the export is
// an append-only journal, not a synced copy.
type ExportWorker struct {
	consumer EventConsumer
	records  store.RecordReader
	exporter RecordExporter
}

func NewExportWorker(consumer EventConsumer, records store.RecordReader, exporter RecordExporter) *ExportWorker {
	return &ExportWorker{
		consumer: consumer,
		records:  records,
		exporter: exporter,
	}
}

// Run consumes events until the context is canceled.
func (w *ExportWorker) Run(ctx context.Context) error {
	return w.consumer.ConsumeRecordEvents(ctx, func(msg *amqp.RecordEventMessage) error {
		return w.Handle(ctx, msg)
	})
}

// Handle processes one record event. Returning an error requeues the
// delivery, so only retryable failures may error out.
func (w *ExportWorker) Handle(ctx context.Context, msg *amqp.RecordEventMessage) error {
	if msg.Action != amqp.ActionCreated {
		slog.DebugContext(ctx, "Skipping non-create event", "id", msg.ID, "action", msg.Action)
		return nil
	}
	if w.exporter == nil {
		slog.DebugContext(ctx, "No exporter configured, skipping event", "id", msg.ID)
		return nil
	}

	rec, found, err := w.lookup(ctx, msg)
	if err != nil {
		return fmt.Errorf("look up record %s: %w", msg.ID, err)
	}
	if !found {
		// Deleted before we got here. Nothing to export and nothing to retry.
		slog.WarnContext(ctx, "Record gone before export", "id", msg.ID, "month_key", msg.MonthKey)
		return nil
	}

	if err := w.exporter.AppendRecord(ctx, rec); err != nil {
		return fmt.Errorf("export record %s: %w", msg.ID, err)
	}

	slog.InfoContext(ctx, "Exported record to spreadsheet", "id", msg.ID, "date", rec.Date)
	return nil
}

// lookup finds the event's record inside its month snapshot. The event
// carries only the ID and month key, so the month query bounds the scan.
func (w *ExportWorker) lookup(ctx context.Context, msg *amqp.RecordEventMessage) (core.ExpenseRecord, bool, error) {
	records, err := w.records.ListByMonth(ctx, msg.MonthKey)
	if err != nil {
		return core.ExpenseRecord{}, false, err
	}
	for _, r := range records {
		if r.ID == msg.ID {
			return r, true, nil
		}
	}
	return core.ExpenseRecord{}, false, nil
}
