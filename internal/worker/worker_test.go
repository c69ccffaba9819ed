package worker

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/zayLatt25/receipt-app/internal/amqp"
	"github.com/zayLatt25/receipt-app/internal/core"
	"github.com/zayLatt25/receipt-app/internal/stats"
	"github.com/zayLatt25/receipt-app/internal/store/memory"
)

type fakeExporter struct {
	exported []core.ExpenseRecord
	err      error
}

func (f *fakeExporter) AppendRecord(_ context.Context, r core.ExpenseRecord) error {
	if f.err != nil {
		return f.err
	}
	f.exported = append(f.exported, r)
	return nil
}

func TestExportWorkerExportsCreatedRecord(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	id, err := st.Append(ctx, core.ExpenseRecord{
		Description: "Coffee",
		Amount:      core.Money{Cents: 350},
		Category:    "Eating Out",
		Date:        "2025-08-12",
	})
	if err != nil {
		t.Fatal(err)
	}

	exp := &fakeExporter{}
	w := NewExportWorker(nil, st, exp)

	if err := w.Handle(ctx, amqp.NewRecordEventMessage(id, "2025-08", amqp.ActionCreated)); err != nil {
		t.Fatal(err)
	}
	if len(exp.exported) != 1 || exp.exported[0].ID != id {
		t.Fatalf("exported = %+v", exp.exported)
	}
}

func TestExportWorkerSkipsDeletesAndMissingRecords(t *testing.T) {
	st := memory.New()
	exp := &fakeExporter{}
	w := NewExportWorker(nil, st, exp)
	ctx := context.Background()

	if err := w.Handle(ctx, amqp.NewRecordEventMessage("x", "2025-08", amqp.ActionDeleted)); err != nil {
		t.Fatal(err)
	}
	// Created event for a record that was deleted before consumption.
	if err := w.Handle(ctx, amqp.NewRecordEventMessage("gone", "2025-08", amqp.ActionCreated)); err != nil {
		t.Fatal(err)
	}
	if len(exp.exported) != 0 {
		t.Fatalf("exported = %+v, want none", exp.exported)
	}
}

func TestExportWorkerPropagatesExportErrorForRetry(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	id, err := st.Append(ctx, core.ExpenseRecord{
		Description: "Coffee",
		Amount:      core.Money{Cents: 350},
		Category:    "Eating Out",
		Date:        "2025-08-12",
	})
	if err != nil {
		t.Fatal(err)
	}

	exp := &fakeExporter{err: errors.New("quota exceeded")}
	w := NewExportWorker(nil, st, exp)

	if err := w.Handle(ctx, amqp.NewRecordEventMessage(id, "2025-08", amqp.ActionCreated)); err == nil {
		t.Fatal("expected error so the delivery gets requeued")
	}
}

type fakeSummarizer struct {
	summary stats.WeeklySummary
}

func (f *fakeSummarizer) WeeklySummary(context.Context, time.Time) stats.WeeklySummary {
	return f.summary
}

type fakeNotifyPublisher struct {
	published []*amqp.SummaryNotificationMessage
	err       error
}

func (f *fakeNotifyPublisher) PublishSummaryNotification(_ context.Context, msg *amqp.SummaryNotificationMessage) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	return nil
}

func TestNotifyWorkerPublishesRenderedSummary(t *testing.T) {
	pct := 50.0
	summarizer := &fakeSummarizer{summary: stats.WeeklySummary{
		CurrentTotal:     core.Money{Cents: 3000},
		PriorTotal:       core.Money{Cents: 2000},
		PercentageChange: &pct,
		ChangeType:       stats.ChangeMore,
		ExpenseCount:     2,
		StartDate:        "2025-08-18",
		EndDate:          "2025-08-24",
	}}
	pub := &fakeNotifyPublisher{}

	w := NewNotifyWorker(summarizer, pub, time.Hour)
	w.Notify(context.Background())

	if len(pub.published) != 1 {
		t.Fatalf("published %d messages, want 1", len(pub.published))
	}
	msg := pub.published[0]
	if !strings.Contains(msg.Message, "50% more than last week") {
		t.Fatalf("message = %q", msg.Message)
	}
	if msg.StartDate != "2025-08-18" || msg.EndDate != "2025-08-24" {
		t.Fatalf("window = %s - %s", msg.StartDate, msg.EndDate)
	}
}

func TestNotifyWorkerStartStop(t *testing.T) {
	w := NewNotifyWorker(&fakeSummarizer{}, &fakeNotifyPublisher{}, time.Hour)
	ctx := context.Background()

	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(ctx); err == nil {
		t.Fatal("second Start should fail while running")
	}

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := w.Stop(stopCtx); err != nil {
		t.Fatal(err)
	}
	// Stopping again is a no-op.
	if err := w.Stop(stopCtx); err != nil {
		t.Fatal(err)
	}
}
