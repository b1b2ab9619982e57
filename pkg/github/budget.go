package github

import (
	"sync"
	"time"

	apperrors "github.com/repolens/repolens/pkg/errors"
)

// Budget tracks the remaining GitHub rate-limit allowance, shared by all
// concurrent lookups issued through one client. Acquire and Observe use a
// single mutex so two concurrent callers can never both consume the last
// remaining call.
//
// The budget starts unknown and learns its state from X-RateLimit-Remaining
// response headers. While unknown, Acquire always succeeds and the first
// response seeds the counter.
type Budget struct {
	mu        sync.Mutex
	remaining int
	resetAt   time.Time
	known     bool
}

// NewBudget returns a budget in the unknown state.
func NewBudget() *Budget { return &Budget{} }

// Acquire reserves one call from the budget. It returns a RateLimitedError
// when the window is exhausted and has not yet reset.
func (b *Budget) Acquire() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.known {
		return nil
	}
	if !b.resetAt.IsZero() && time.Now().After(b.resetAt) {
		// Window rolled over; forget the stale counter.
		b.known = false
		return nil
	}
	if b.remaining <= 0 {
		return &apperrors.RateLimitedError{ResetAt: b.resetAt}
	}
	b.remaining--
	return nil
}

// Observe updates the budget from a response's rate-limit headers. Because
// concurrent responses can arrive out of order, a higher observed value
// never raises a known counter within the same window.
func (b *Budget) Observe(remaining int, resetAt time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sameWindow := b.known && b.resetAt.Equal(resetAt)
	if sameWindow && remaining > b.remaining {
		return
	}
	b.remaining = remaining
	b.resetAt = resetAt
	b.known = true
}

// Remaining reports the tracked allowance. The second return is false while
// the budget has not yet observed any response.
func (b *Budget) Remaining() (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.remaining, b.known
}
