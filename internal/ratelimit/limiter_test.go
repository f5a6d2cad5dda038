package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestCheckSchedule(t *testing.T) {
	clock := newFakeClock()
	l := New(WithClock(clock.Now))
	key := Key("user-1", "create_client")
	window := 1000 * time.Millisecond

	steps := []struct {
		at      time.Duration
		allowed bool
	}{
		{0, true},
		{100 * time.Millisecond, true},
		{200 * time.Millisecond, true},
		{300 * time.Millisecond, false},
		{1100 * time.Millisecond, true},
	}

	var elapsed time.Duration
	for _, step := range steps {
		clock.Advance(step.at - elapsed)
		elapsed = step.at

		d := l.Check(key, 3, window)
		if d.Allowed != step.allowed {
			t.Fatalf("at %v: Allowed = %v, want %v", step.at, d.Allowed, step.allowed)
		}
	}
}

func TestCheckRetryAfter(t *testing.T) {
	clock := newFakeClock()
	l := New(WithClock(clock.Now))
	key := Key("user-1", "delete_invoice")

	for i := 0; i < 2; i++ {
		if d := l.Check(key, 2, 10*time.Second); !d.Allowed || d.Remaining != 1-i {
			t.Fatalf("attempt %d: %+v", i, d)
		}
	}

	clock.Advance(4 * time.Second)
	d := l.Check(key, 2, 10*time.Second)
	if d.Allowed {
		t.Fatal("third attempt should be blocked")
	}
	if d.RetryAfter != 6*time.Second || d.RetryAfterSeconds() != 6 {
		t.Errorf("RetryAfter = %v (%ds), want 6s", d.RetryAfter, d.RetryAfterSeconds())
	}

	clock.Advance(5500 * time.Millisecond)
	d = l.Check(key, 2, 10*time.Second)
	if d.Allowed || d.RetryAfterSeconds() != 1 {
		t.Errorf("still blocked with 500ms left, got %+v", d)
	}

	clock.Advance(500 * time.Millisecond)
	d = l.Check(key, 2, 10*time.Second)
	if !d.Allowed || d.Remaining != 1 {
		t.Errorf("window should have reset, got %+v", d)
	}
}

func TestRejectedAttemptsAreNotRecorded(t *testing.T) {
	clock := newFakeClock()
	l := New(WithClock(clock.Now))
	key := Key("u", "a")

	l.Check(key, 1, time.Second)
	for i := 0; i < 5; i++ {
		clock.Advance(100 * time.Millisecond)
		l.Check(key, 1, time.Second)
	}

	clock.Advance(500 * time.Millisecond)
	if d := l.Check(key, 1, time.Second); !d.Allowed {
		t.Errorf("blocked attempts must not extend the window: %+v", d)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	l := New()
	l.Check(Key("a", "x"), 1, time.Minute)

	if !l.Check(Key("b", "x"), 1, time.Minute).Allowed {
		t.Error("other user should not be limited")
	}
	if !l.Check(Key("a", "y"), 1, time.Minute).Allowed {
		t.Error("other action should not be limited")
	}
	if l.Check(Key("a", "x"), 1, time.Minute).Allowed {
		t.Error("same key should be limited")
	}
}

func TestResetAndSweep(t *testing.T) {
	clock := newFakeClock()
	l := New(WithClock(clock.Now))

	l.Check("k1", 1, time.Second)
	l.Check("k1", 1, time.Second)
	l.Check("k2", 5, time.Second)

	l.Reset("k1")
	if !l.Check("k1", 1, time.Second).Allowed {
		t.Error("Reset should clear the key")
	}

	clock.Advance(2 * time.Second)
	l.Sweep()
	if l.Len() != 0 {
		t.Errorf("Len after sweep = %d, want 0", l.Len())
	}

	l.Check("k3", 1, time.Second)
	l.ResetAll()
	if l.Len() != 0 {
		t.Errorf("Len after ResetAll = %d", l.Len())
	}
}

func TestSweepKeepsBlockedKeys(t *testing.T) {
	clock := newFakeClock()
	l := New(WithClock(clock.Now))

	l.Check("k", 1, time.Second)
	clock.Advance(900 * time.Millisecond)
	l.Check("k", 1, time.Second)
	l.Sweep()

	if l.Len() != 1 {
		t.Fatalf("blocked key was swept")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		l.Run(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestConcurrentChecks(t *testing.T) {
	l := New()
	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Check("shared", 10, time.Minute).Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 10 {
		t.Errorf("allowed = %d, want 10", allowed)
	}
}
