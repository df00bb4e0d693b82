package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshitjain2004/EnvoSafe/internal/core/order"
)

type recorder struct {
	mu       sync.Mutex
	payloads []map[string]any
	failures int
	done     chan struct{}
}

func (r *recorder) send(_ context.Context, url string, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failures > 0 {
		r.failures--
		return errors.New("receiver down")
	}
	r.payloads = append(r.payloads, payload.(map[string]any))
	close(r.done)
	return nil
}

func noDelay(int) time.Duration { return time.Millisecond }

func TestWorkerDeliversEvent(t *testing.T) {
	rec := &recorder{done: make(chan struct{})}
	w := NewWebhookWorker("http://hooks.local/orders", rec.send, WithBackoff(noDelay))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	w.Publish(ctx, order.Event{Type: order.EventOrderConfirmed, Plant: "Neem Tree", Total: 90})

	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("webhook was not delivered")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.payloads, 1)
	assert.Equal(t, "order.confirmed", rec.payloads[0]["event"])
	assert.Equal(t, "Neem Tree", rec.payloads[0]["data"].(order.Event).Plant)
}

func TestWorkerRetriesUntilSuccess(t *testing.T) {
	rec := &recorder{done: make(chan struct{}), failures: 2}
	w := NewWebhookWorker("http://hooks.local/orders", rec.send, WithBackoff(noDelay))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	w.Publish(ctx, order.Event{Type: order.EventOrderFailed})

	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("webhook was not retried")
	}
}

func TestWorkerGivesUp(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	send := func(context.Context, string, any) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return errors.New("receiver down")
	}
	w := NewWebhookWorker("http://hooks.local/orders", send, WithBackoff(noDelay), WithMaxAttempts(3))

	w.process(context.Background(), job{payload: map[string]any{"event": "order.failed"}})

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, calls)
}

func TestPublishDropsWhenFull(t *testing.T) {
	w := NewWebhookWorker("http://hooks.local/orders", func(context.Context, string, any) error { return nil },
		WithQueueSize(1))

	w.Publish(context.Background(), order.Event{Type: order.EventOrderConfirmed})
	w.Publish(context.Background(), order.Event{Type: order.EventOrderConfirmed})

	assert.Len(t, w.jobs, 1)
}
