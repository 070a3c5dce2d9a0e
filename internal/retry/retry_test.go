package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"pgregory.net/rapid"
)

var errNotRendered = errors.New("meeting list not rendered yet")

func testDo_ExhaustsExactlyNAttempts(t *rapid.T) {
	attempts := rapid.IntRange(1, 20).Draw(t, "attempts")

	calls := 0
	p := Policy{Attempts: attempts, Delay: 0}
	err := p.Do(context.Background(), func(context.Context) error {
		calls++
		return errNotRendered
	})

	if calls != attempts {
		t.Fatalf("work ran %d times, want exactly %d", calls, attempts)
	}
	if !errors.Is(err, errNotRendered) {
		t.Fatalf("Do must return the last work error, got %v", err)
	}
}

func TestDo_ExhaustsExactlyNAttempts(t *testing.T) {
	t.Parallel()
	rapid.Check(t, testDo_ExhaustsExactlyNAttempts)
}

func testDo_StopsOnFirstSuccess(t *rapid.T) {
	attempts := rapid.IntRange(1, 20).Draw(t, "attempts")
	succeedOn := rapid.IntRange(1, attempts).Draw(t, "succeedOn")

	calls := 0
	p := Policy{Attempts: attempts, Delay: 0}
	err := p.Do(context.Background(), func(context.Context) error {
		calls++
		if calls == succeedOn {
			return nil
		}
		return errNotRendered
	})

	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if calls != succeedOn {
		t.Fatalf("work ran %d times, want %d (stop on first success)", calls, succeedOn)
	}
}

func TestDo_StopsOnFirstSuccess(t *testing.T) {
	t.Parallel()
	rapid.Check(t, testDo_StopsOnFirstSuccess)
}

func testDo_NudgeRunsStrictlyBetweenAttempts(t *rapid.T) {
	attempts := rapid.IntRange(1, 12).Draw(t, "attempts")

	var trace []string
	p := Policy{
		Attempts: attempts,
		Delay:    0,
		Nudge: func(context.Context) error {
			trace = append(trace, "nudge")
			return nil
		},
	}
	_ = p.Do(context.Background(), func(context.Context) error {
		trace = append(trace, "work")
		return errNotRendered
	})

	// Expected shape: work (nudge work){attempts-1}; never a leading or
	// trailing nudge.
	if len(trace) == 0 || trace[0] != "work" {
		t.Fatalf("nudge ran before first attempt: %v", trace)
	}
	if trace[len(trace)-1] != "work" {
		t.Fatalf("nudge ran after final attempt: %v", trace)
	}
	nudges := 0
	for _, ev := range trace {
		if ev == "nudge" {
			nudges++
		}
	}
	if nudges != attempts-1 {
		t.Fatalf("nudge ran %d times, want %d", nudges, attempts-1)
	}
}

func TestDo_NudgeRunsStrictlyBetweenAttempts(t *testing.T) {
	t.Parallel()
	rapid.Check(t, testDo_NudgeRunsStrictlyBetweenAttempts)
}

func TestDo_FailedNudgeDoesNotConsumeAttempts(t *testing.T) {
	t.Parallel()

	calls := 0
	p := Policy{
		Attempts: 3,
		Delay:    0,
		Nudge:    func(context.Context) error { return errors.New("scroll failed") },
	}
	_ = p.Do(context.Background(), func(context.Context) error {
		calls++
		return errNotRendered
	})
	if calls != 3 {
		t.Fatalf("work ran %d times, want 3", calls)
	}
}

func TestDo_ZeroAttemptsStillRunsOnce(t *testing.T) {
	t.Parallel()

	calls := 0
	p := Policy{Attempts: 0}
	if err := p.Do(context.Background(), func(context.Context) error {
		calls++
		return nil
	}); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if calls != 1 {
		t.Fatalf("work ran %d times, want 1", calls)
	}
}

func TestDo_ContextCancelAbortsBetweenAttempts(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	p := Policy{Attempts: 5, Delay: time.Hour}
	err := p.Do(ctx, func(context.Context) error {
		calls++
		cancel()
		return errNotRendered
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Fatalf("work ran %d times after cancel, want 1", calls)
	}
}

func TestDo_FixedDelayBetweenAttempts(t *testing.T) {
	t.Parallel()

	start := time.Now()
	p := Policy{Attempts: 3, Delay: 30 * time.Millisecond}
	_ = p.Do(context.Background(), func(context.Context) error {
		return errNotRendered
	})
	elapsed := time.Since(start)
	if elapsed < 60*time.Millisecond {
		t.Fatalf("elapsed %v, want at least 2 fixed delays (60ms)", elapsed)
	}
}
