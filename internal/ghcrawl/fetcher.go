package ghcrawl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/go-github/v68/github"
)

var (
	// ErrUnavailable reports that a resource could not be fetched. Callers
	// treat it as "no data" rather than as a fatal error.
	ErrUnavailable = errors.New("github resource unavailable")
	// ErrRateLimited reports an exhausted rate limit. It is never retried.
	ErrRateLimited = fmt.Errorf("%w: rate limit exhausted", ErrUnavailable)
	// ErrPending reports a 202 response: GitHub is still computing the
	// requested statistics.
	ErrPending = fmt.Errorf("%w: statistics still being computed", ErrUnavailable)
	// ErrUndecodable reports file content that was fetched but could not
	// be decoded.
	ErrUndecodable = fmt.Errorf("%w: content could not be decoded", ErrUnavailable)
)

// Policy is a linear, jitter-free retry schedule. The wait before retry n
// (1-based) is n*BaseDelay.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultPolicy returns three attempts with waits of 2s and 4s between them.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, BaseDelay: 2 * time.Second}
}

// Delay returns the wait that follows the given failed attempt (1-based).
func (p Policy) Delay(attempt int) time.Duration {
	return time.Duration(attempt) * p.BaseDelay
}

func (p Policy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the production Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Fetcher runs GitHub calls under a retry policy and tracks rate-limit resets.
type Fetcher struct {
	policy Policy
	sleep  Sleeper

	mu    sync.Mutex
	reset time.Time
}

// NewFetcher returns a Fetcher. A nil sleep uses SleepContext.
func NewFetcher(policy Policy, sleep Sleeper) *Fetcher {
	if sleep == nil {
		sleep = SleepContext
	}
	return &Fetcher{policy: policy, sleep: sleep}
}

// RateLimitReset returns the reset time reported by the most recent
// exhausted-rate-limit response, or the zero time.
func (f *Fetcher) RateLimitReset() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reset
}

// Sleep waits using the fetcher's sleeper, so callers' throttles stay
// injectable in tests.
func (f *Fetcher) Sleep(ctx context.Context, d time.Duration) error {
	return f.sleep(ctx, d)
}

func (f *Fetcher) recordReset(t time.Time) {
	f.mu.Lock()
	f.reset = t
	f.mu.Unlock()
}

// fetch calls call until it succeeds or the policy is exhausted.
// An exhausted rate limit and a 202 response end the loop immediately.
func fetch[T any](ctx context.Context, f *Fetcher, resource string, call func(context.Context) (T, *github.Response, error)) (T, error) {
	var zero T
	maxAttempts := f.policy.attempts()
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		v, _, err := call(ctx)
		if err == nil {
			return v, nil
		}

		var rle *github.RateLimitError
		if errors.As(err, &rle) {
			reset := rle.Rate.Reset.Time
			f.recordReset(reset)
			slog.Warn("github rate limit exhausted, giving up", "resource", resource, "reset", reset)
			return zero, ErrRateLimited
		}
		var accepted *github.AcceptedError
		if errors.As(err, &accepted) {
			return zero, ErrPending
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, fmt.Errorf("%w: %w", ErrUnavailable, ctxErr)
		}

		slog.Debug("github request failed", "resource", resource, "attempt", attempt, "max_attempts", maxAttempts, "error", err)
		if attempt < maxAttempts {
			if err := f.sleep(ctx, f.policy.Delay(attempt)); err != nil {
				return zero, fmt.Errorf("%w: %w", ErrUnavailable, err)
			}
		}
	}
	return zero, ErrUnavailable
}
