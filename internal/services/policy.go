package services

import (
	"context"
	"time"
)

// DefaultUndoWindow is how long a delete can be reversed.
const DefaultUndoWindow = 6 * time.Second

// Policy carries the time source and undo window shared by the services.
type Policy struct {
	UndoWindow time.Duration
	Now        func() time.Time
}

// DefaultPolicy uses the wall clock and the given undo window.
func DefaultPolicy(undoWindow time.Duration) Policy {
	if undoWindow <= 0 {
		undoWindow = DefaultUndoWindow
	}
	return Policy{UndoWindow: undoWindow, Now: time.Now}
}

func (p Policy) now() time.Time {
	if p.Now == nil {
		return time.Now().UTC()
	}
	return p.Now().UTC()
}

func (p Policy) window() time.Duration {
	if p.UndoWindow <= 0 {
		return DefaultUndoWindow
	}
	return p.UndoWindow
}

// UndoDeadline is the last moment a delete made at deletedAt can be undone.
func (p Policy) UndoDeadline(deletedAt time.Time) time.Time {
	return deletedAt.Add(p.window())
}

type ctxKey int

const clientIPKey ctxKey = iota

// WithClientIP attaches the caller's IP address for audit records.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

func clientIPFrom(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey).(string)
	return ip
}
