package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/akshitjain2004/EnvoSafe/internal/core/order"
)

// SendFunc delivers one webhook payload.
type SendFunc func(ctx context.Context, url string, payload any) error

type job struct {
	payload  map[string]any
	attempts int
}

// WebhookWorker forwards order events to a webhook URL in the background.
// It implements order.Publisher.
type WebhookWorker struct {
	url         string
	send        SendFunc
	jobs        chan job
	maxAttempts int
	backoff     func(attempts int) time.Duration
}

type Option func(*WebhookWorker)

func WithMaxAttempts(n int) Option {
	return func(w *WebhookWorker) { w.maxAttempts = n }
}

func WithBackoff(fn func(attempts int) time.Duration) Option {
	return func(w *WebhookWorker) { w.backoff = fn }
}

func WithQueueSize(n int) Option {
	return func(w *WebhookWorker) { w.jobs = make(chan job, n) }
}

func NewWebhookWorker(url string, send SendFunc, opts ...Option) *WebhookWorker {
	w := &WebhookWorker{
		url:         url,
		send:        send,
		jobs:        make(chan job, 64),
		maxAttempts: 5,
		backoff: func(attempts int) time.Duration {
			return time.Duration(attempts*10+10) * time.Second
		},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Publish queues the event. A full queue drops the event.
func (w *WebhookWorker) Publish(_ context.Context, ev order.Event) {
	j := job{payload: map[string]any{
		"event": string(ev.Type),
		"data":  ev,
	}}

	select {
	case w.jobs <- j:
		slog.Info("✅ Webhook queued for Worker!", "event", ev.Type)
	default:
		slog.Error("❌ Webhook queue full, dropping event", "event", ev.Type)
	}
}

// Run processes jobs until ctx is cancelled.
func (w *WebhookWorker) Run(ctx context.Context) {
	slog.Info("👷 Webhook Worker started", "url", w.url)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Webhook Worker stopped", "pending", len(w.jobs))
			return
		case j := <-w.jobs:
			w.process(ctx, j)
		}
	}
}

func (w *WebhookWorker) process(ctx context.Context, j job) {
	for {
		err := w.send(ctx, w.url, j.payload)
		if err == nil {
			slog.Info("✅ Worker: Webhook Sent Successfully!", "event", j.payload["event"])
			return
		}

		j.attempts++
		slog.Error("Worker: Webhook failed", "error", err, "attempts", j.attempts)
		if j.attempts >= w.maxAttempts {
			slog.Error("Worker: Job marked as FAILED (Max attempts reached)", "event", j.payload["event"])
			return
		}

		delay := w.backoff(j.attempts)
		slog.Info("Worker: Scheduled retry", "in", delay)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}
