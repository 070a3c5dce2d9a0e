// Package retry copes with asynchronously rendered UI by repeating a
// resolve+act unit of work a bounded number of times with a fixed delay.
// Deliberately no exponential backoff and no jitter: test runs stay
// deterministic.
package retry

import (
	"context"
	"time"

	"github.com/quorumhq/quorum-e2e/internal/obs"
)

// Policy bounds one retried unit of work.
type Policy struct {
	// Attempts is the maximum attempt count; values below 1 mean 1.
	Attempts int
	// Delay is the fixed pause between attempts.
	Delay time.Duration
	// Nudge, when set, runs between attempts (never before the first,
	// never after the last) to provoke rendering, e.g. a scroll.
	Nudge func(ctx context.Context) error
}

// Do runs work until it succeeds or attempts are exhausted, returning the
// last error. Context cancellation aborts the wait between attempts.
func (p Policy) Do(ctx context.Context, work func(ctx context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	log := obs.From(ctx)
	var last error
	for i := 1; i <= attempts; i++ {
		if i > 1 {
			if err := sleep(ctx, p.Delay); err != nil {
				return err
			}
			if p.Nudge != nil {
				if err := p.Nudge(ctx); err != nil {
					// The nudge is best-effort; a failed scroll must not
					// consume an attempt.
					log.Warn("nudge failed between attempts", "attempt", i, "error", err)
				}
			}
		}
		if err := work(ctx); err != nil {
			last = err
			log.Debug("attempt failed", "attempt", i, "of", attempts, "error", err)
			continue
		}
		return nil
	}
	return last
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
