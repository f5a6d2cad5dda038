// Package ratelimit throttles repeated actions per user with a sliding window
// of attempt timestamps.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Decision is the outcome of one Check.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// RetryAfterSeconds rounds RetryAfter up to whole seconds, never below one
// while blocked.
func (d Decision) RetryAfterSeconds() int {
	if d.Allowed || d.RetryAfter <= 0 {
		return 0
	}
	secs := int((d.RetryAfter + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}

type bucket struct {
	attempts     []time.Time
	window       time.Duration
	blockedUntil time.Time
}

// Limiter tracks attempts per key. The zero value is not usable, use New.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// New creates an empty limiter.
func New(opts ...Option) *Limiter {
	l := &Limiter{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Key scopes an action to a user.
func Key(userID, action string) string {
	return userID + ":" + action
}

// Check records an attempt for key if fewer than limit attempts happened in
// the last window. Rejected attempts are not recorded. Once blocked, the key
// stays blocked until its oldest attempt ages out, then starts empty.
func (l *Limiter) Check(key string, limit int, window time.Duration) Decision {
	if limit <= 0 || window <= 0 {
		return Decision{Allowed: true}
	}

	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{}
		l.buckets[key] = b
	}
	b.window = window

	if !b.blockedUntil.IsZero() {
		if now.Before(b.blockedUntil) {
			return Decision{RetryAfter: b.blockedUntil.Sub(now)}
		}
		b.attempts = b.attempts[:0]
		b.blockedUntil = time.Time{}
	}

	b.attempts = prune(b.attempts, now, window)

	if len(b.attempts) >= limit {
		b.blockedUntil = b.attempts[0].Add(window)
		return Decision{RetryAfter: b.blockedUntil.Sub(now)}
	}

	b.attempts = append(b.attempts, now)
	return Decision{Allowed: true, Remaining: limit - len(b.attempts)}
}

// Reset forgets all attempts for key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	delete(l.buckets, key)
	l.mu.Unlock()
}

// ResetAll forgets every key.
func (l *Limiter) ResetAll() {
	l.mu.Lock()
	l.buckets = make(map[string]*bucket)
	l.mu.Unlock()
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Sweep drops keys that are neither blocked nor holding a recent attempt.
func (l *Limiter) Sweep() {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, b := range l.buckets {
		if now.Before(b.blockedUntil) {
			continue
		}
		b.attempts = prune(b.attempts, now, b.window)
		if len(b.attempts) == 0 {
			delete(l.buckets, key)
		}
	}
}

// Run sweeps every interval until ctx is done.
func (l *Limiter) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.Sweep()
		case <-ctx.Done():
			return
		}
	}
}

// prune keeps attempts younger than window, in place.
func prune(attempts []time.Time, now time.Time, window time.Duration) []time.Time {
	kept := attempts[:0]
	for _, ts := range attempts {
		if now.Sub(ts) < window {
			kept = append(kept, ts)
		}
	}
	return kept
}
