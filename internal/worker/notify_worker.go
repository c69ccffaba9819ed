package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/zayLatt25/receipt-app/internal/amqp"
	"github.com/zayLatt25/receipt-app/internal/stats"
)

// WeeklySummarizer computes the week-over-week comparison for a reference
// day. Satisfied by *services.SummaryService.
type WeeklySummarizer interface {
	WeeklySummary(ctx context.Context, ref time.Time) stats.WeeklySummary
}

// NotificationPublisher puts a rendered summary on the notify queue.
// Satisfied by *amqp.Client.
type NotificationPublisher interface {
	PublishSummaryNotification(ctx context.Context, msg *amqp.SummaryNotificationMessage) error
}

// NotifyWorker periodically renders the weekly spending summary and
// publishes it as a notification.
type NotifyWorker struct {
	summaries WeeklySummarizer
	publisher NotificationPublisher
	interval  time.Duration
	now       func() time.Time

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewNotifyWorker(summaries WeeklySummarizer, publisher NotificationPublisher, interval time.Duration) *NotifyWorker {
	return &NotifyWorker{
		summaries: summaries,
		publisher: publisher,
		interval:  interval,
		now:       time.Now,
	}
}

// Start begins the notification loop. Returns an error if already running.
func (w *NotifyWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("notify worker is already running")
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	go w.runLoop(ctx)

	slog.InfoContext(ctx, "Notify worker started", "interval", w.interval)
	return nil
}

// Stop gracefully stops the worker and waits for completion.
func (w *NotifyWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	close(w.stopCh)

	select {
	case <-w.doneCh:
		slog.InfoContext(ctx, "Notify worker stopped gracefully")
	case <-ctx.Done():
		slog.WarnContext(ctx, "Notify worker stop timed out")
		return ctx.Err()
	}

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
	return nil
}

func (w *NotifyWorker) runLoop(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Notify(ctx)
		}
	}
}

// Notify computes and publishes one weekly summary notification.
func (w *NotifyWorker) Notify(ctx context.Context) {
	summary := w.summaries.WeeklySummary(ctx, w.now())

	msg := &amqp.SummaryNotificationMessage{
		Message:   stats.SummaryMessage(summary),
		StartDate: summary.StartDate,
		EndDate:   summary.EndDate,
		Timestamp: w.now(),
	}
	if err := w.publisher.PublishSummaryNotification(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish weekly summary notification", "error", err)
		return
	}

	slog.InfoContext(ctx, "Published weekly summary",
		"start_date", msg.StartDate,
		"end_date", msg.EndDate,
		"change_type", summary.ChangeType)
}
