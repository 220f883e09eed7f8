package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PabloGalante/pci-agent/internal/domain"
)

type flakyLLM struct {
	failures int // fail this many calls before succeeding
	calls    int
}

func (f *flakyLLM) Complete(ctx context.Context, messages []domain.Turn) (string, error) {
	f.calls++
	if f.calls <= f.failures {
		return "", errors.New("connection reset")
	}
	return "ok", nil
}

func newTestRetryClient(inner domain.CompletionClient, maxRetries int) *RetryClient {
	c := NewRetryClient(inner, RetryOptions{MaxRetries: maxRetries, BaseBackoff: time.Millisecond})
	c.sleep = func(time.Duration) {}
	return c
}

func TestRetrySucceedsAfterTransientFailure(t *testing.T) {
	inner := &flakyLLM{failures: 2}
	client := newTestRetryClient(inner, 2)

	text, err := client.Complete(context.Background(), nil)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if text != "ok" {
		t.Fatalf("expected ok, got %q", text)
	}
	if inner.calls != 3 {
		t.Fatalf("expected 3 calls, got %d", inner.calls)
	}
}

func TestRetryGivesUpAtBound(t *testing.T) {
	inner := &flakyLLM{failures: 10}
	client := newTestRetryClient(inner, 2)

	_, err := client.Complete(context.Background(), nil)
	if err == nil {
		t.Fatalf("expected error after exhausting retries")
	}
	var se *domain.ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected ServiceError, got %T", err)
	}
	if inner.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", inner.calls)
	}
}

func TestRetryDoesNotRetryCancelledContext(t *testing.T) {
	inner := &cancelledLLM{}
	client := newTestRetryClient(inner, 3)

	_, err := client.Complete(context.Background(), nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if inner.calls != 1 {
		t.Fatalf("expected a single attempt for cancelled context, got %d", inner.calls)
	}
}

type cancelledLLM struct {
	calls int
}

func (c *cancelledLLM) Complete(ctx context.Context, messages []domain.Turn) (string, error) {
	c.calls++
	return "", context.Canceled
}

func TestBreakerOpensAndRejectsFast(t *testing.T) {
	inner := &flakyLLM{failures: 1000}
	client := newTestRetryClient(inner, 0)
	client.breaker = NewCircuitBreaker(3, time.Minute)

	for i := 0; i < 3; i++ {
		if _, err := client.Complete(context.Background(), nil); err == nil {
			t.Fatalf("expected failure")
		}
	}
	if client.breaker.State() != CircuitOpen {
		t.Fatalf("expected open breaker, got %q", client.breaker.State())
	}

	before := inner.calls
	_, err := client.Complete(context.Background(), nil)
	if err == nil {
		t.Fatalf("expected breaker rejection")
	}
	if inner.calls != before {
		t.Fatalf("breaker should reject without calling the provider")
	}
}

func TestBreakerHalfOpenProbeAfterCooldown(t *testing.T) {
	b := NewCircuitBreaker(1, time.Minute)
	start := time.Now()

	b.RecordFailure(start)
	if b.State() != CircuitOpen {
		t.Fatalf("expected open after threshold, got %q", b.State())
	}
	if b.Allow(start.Add(time.Second)) {
		t.Fatalf("expected rejection inside cooldown")
	}
	if !b.Allow(start.Add(2 * time.Minute)) {
		t.Fatalf("expected half-open probe after cooldown")
	}
	if b.State() != CircuitHalfOpen {
		t.Fatalf("expected half_open, got %q", b.State())
	}

	b.RecordSuccess()
	if b.State() != CircuitClosed {
		t.Fatalf("expected closed after successful probe, got %q", b.State())
	}
}
