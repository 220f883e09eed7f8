package llm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/openai/openai-go"

	"github.com/PabloGalante/pci-agent/internal/domain"
	"github.com/PabloGalante/pci-agent/internal/observability"
)

// RetryOptions bound the decorator around a completion client.
type RetryOptions struct {
	Timeout     time.Duration // per-attempt timeout, 0 = none
	MaxRetries  int           // attempts beyond the first
	BaseBackoff time.Duration // doubled after each failed attempt
}

// RetryClient wraps a CompletionClient with a per-call timeout, a bounded
// retry with exponential backoff, and a circuit breaker. The completion
// provider is the pipeline's single point of failure, so calls to a dead
// provider fail fast instead of stacking up.
type RetryClient struct {
	inner domain.CompletionClient
	opts  RetryOptions

	mu      sync.Mutex
	breaker *CircuitBreaker
	now     func() time.Time
	sleep   func(time.Duration)
}

var errCircuitOpen = errors.New("completion circuit open")

func NewRetryClient(inner domain.CompletionClient, opts RetryOptions) *RetryClient {
	if opts.BaseBackoff <= 0 {
		opts.BaseBackoff = 500 * time.Millisecond
	}
	return &RetryClient{
		inner:   inner,
		opts:    opts,
		breaker: NewCircuitBreaker(0, 0),
		now:     time.Now,
		sleep:   time.Sleep,
	}
}

func (r *RetryClient) Complete(ctx context.Context, messages []domain.Turn) (string, error) {
	r.mu.Lock()
	allowed := r.breaker.Allow(r.now())
	r.mu.Unlock()
	if !allowed {
		return "", domain.NewServiceError("breaker", errCircuitOpen)
	}

	log := observability.LoggerFromContext(ctx)

	backoff := r.opts.BaseBackoff
	var lastErr error

	for attempt := 0; attempt <= r.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			log.Warn("retrying completion call", "attempt", attempt, "backoff_ms", backoff.Milliseconds())
			r.sleep(backoff)
			backoff *= 2
		}

		text, err := r.completeOnce(ctx, messages)
		if err == nil {
			r.mu.Lock()
			r.breaker.RecordSuccess()
			r.mu.Unlock()
			return text, nil
		}

		lastErr = err
		r.mu.Lock()
		r.breaker.RecordFailure(r.now())
		r.mu.Unlock()

		if !isRetryable(err) {
			break
		}
	}

	return "", domain.NewServiceError("retry", fmt.Errorf("completion failed after retries: %w", lastErr))
}

func (r *RetryClient) completeOnce(ctx context.Context, messages []domain.Turn) (string, error) {
	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}
	return r.inner.Complete(ctx, messages)
}

// isRetryable mirrors the usual provider semantics: rate limits, server
// errors, and plain network failures are worth another attempt; client
// errors and cancelled contexts are not.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == 429 || apiErr.StatusCode >= 500 {
			return true
		}
		return false
	}

	// No structured status available (gemini transport errors, raw network
	// failures): retry.
	return true
}
