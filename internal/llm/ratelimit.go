package llm

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// rateLimiter implements a simple token bucket rate limiter.
type rateLimiter struct {
	lastRefill time.Time
	stopCh     chan struct{}
	tokens     int
	capacity   int
	refillRate int
	mu         sync.Mutex
}

// newRateLimiter creates a new rate limiter with the specified requests per minute.
func newRateLimiter(requestsPerMinute int) *rateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}

	rl := &rateLimiter{
		tokens:     requestsPerMinute,
		capacity:   requestsPerMinute,
		refillRate: requestsPerMinute,
		lastRefill: time.Now(),
		stopCh:     make(chan struct{}),
	}

	go rl.refill()

	return rl
}

// wait blocks until a token is available or the context is canceled.
func (rl *rateLimiter) wait(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		if rl.tryAcquire() {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("rate limiter canceled: %w", ctx.Err())
		case <-ticker.C:
			// Try again
		}
	}
}

// tryAcquire attempts to acquire a token without blocking.
func (rl *rateLimiter) tryAcquire() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.tokens > 0 {
		rl.tokens--
		return true
	}
	return false
}

// refill periodically adds tokens to the bucket.
func (rl *rateLimiter) refill() {
	ticker := time.NewTicker(time.Minute / time.Duration(rl.refillRate))
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			rl.mu.Lock()
			if rl.tokens < rl.capacity {
				rl.tokens++
			}
			rl.mu.Unlock()
		}
	}
}

// Close stops the refill goroutine.
func (rl *rateLimiter) Close() {
	close(rl.stopCh)
}

// rateLimitedClient wraps a Client so completions respect a request budget.
type rateLimitedClient struct {
	inner   Client
	limiter *rateLimiter
}

func newRateLimitedClient(inner Client, requestsPerMinute int) *rateLimitedClient {
	return &rateLimitedClient{
		inner:   inner,
		limiter: newRateLimiter(requestsPerMinute),
	}
}

func (c *rateLimitedClient) Provider() string { return c.inner.Provider() }

func (c *rateLimitedClient) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	if err := c.limiter.wait(ctx); err != nil {
		return "", err
	}
	return c.inner.Complete(ctx, messages, opts)
}

// ListModels passes through to the wrapped client when it supports listing.
func (c *rateLimitedClient) ListModels(ctx context.Context) ([]string, error) {
	lister, ok := c.inner.(ModelLister)
	if !ok {
		return nil, fmt.Errorf("%s client does not support model listing", c.inner.Provider())
	}
	return lister.ListModels(ctx)
}

// Close releases the limiter's refill goroutine.
func (c *rateLimitedClient) Close() {
	c.limiter.Close()
}
