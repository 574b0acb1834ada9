// Package ratelimit implements a fixed-window request counter per
// identifier. Counting happens in the store with a single atomic statement,
// so concurrent requests against the same identifier are never lost.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultWindow      = time.Minute
	DefaultMaxRequests = 10
)

// Store increments the counter for id in the window starting at windowStart
// and returns the new count. A counter left over from an earlier window is
// reset to 1.
type Store interface {
	Increment(ctx context.Context, id string, windowStart time.Time) (int64, error)
}

// Decision is the outcome of one Check.
type Decision struct {
	Identifier string
	Allowed    bool
	Count      int64
	Remaining  int64
	ResetAt    time.Time
}

// Combined merges the decisions for several identifiers. Remaining is the
// smallest across all of them; ResetAt is the latest reset among the
// identifiers that denied, or the earliest reset when all allowed.
type Combined struct {
	Allowed   bool
	Remaining int64
	ResetAt   time.Time
	Denied    []Decision
}

type Limiter struct {
	store       Store
	window      time.Duration
	maxRequests int64
	now         func() time.Time
}

func NewLimiter(store Store, window time.Duration, maxRequests int) *Limiter {
	if window <= 0 {
		window = DefaultWindow
	}
	if maxRequests <= 0 {
		maxRequests = DefaultMaxRequests
	}
	return &Limiter{
		store:       store,
		window:      window,
		maxRequests: int64(maxRequests),
		now:         time.Now,
	}
}

func IPIdentifier(ip string) string { return "ip:" + ip }

func KeyIdentifier(keyID string) string { return "key:" + keyID }

// WindowStart aligns t to the start of its window, counted from the Unix
// epoch.
func (l *Limiter) WindowStart(t time.Time) time.Time {
	w := l.window.Milliseconds()
	return time.UnixMilli(t.UnixMilli() / w * w).UTC()
}

// Check counts one request for identifier.
func (l *Limiter) Check(ctx context.Context, identifier string) (Decision, error) {
	windowStart := l.WindowStart(l.now())

	count, err := l.store.Increment(ctx, identifier, windowStart)
	if err != nil {
		return Decision{}, fmt.Errorf("increment %s: %w", identifier, err)
	}

	remaining := l.maxRequests - count
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Identifier: identifier,
		Allowed:    count <= l.maxRequests,
		Count:      count,
		Remaining:  remaining,
		ResetAt:    windowStart.Add(l.window),
	}, nil
}

// CheckAll counts one request against every identifier concurrently. Every
// counter is incremented even when an earlier one already denies.
func (l *Limiter) CheckAll(ctx context.Context, identifiers ...string) (Combined, error) {
	decisions := make([]Decision, len(identifiers))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range identifiers {
		g.Go(func() error {
			d, err := l.Check(gctx, id)
			if err != nil {
				return err
			}
			decisions[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Combined{}, err
	}

	return combine(decisions), nil
}

func combine(decisions []Decision) Combined {
	out := Combined{Allowed: true}
	for i, d := range decisions {
		if i == 0 || d.Remaining < out.Remaining {
			out.Remaining = d.Remaining
		}
		if d.Allowed {
			if out.Allowed && (out.ResetAt.IsZero() || d.ResetAt.Before(out.ResetAt)) {
				out.ResetAt = d.ResetAt
			}
			continue
		}
		if out.Allowed || d.ResetAt.After(out.ResetAt) {
			out.ResetAt = d.ResetAt
		}
		out.Allowed = false
		out.Denied = append(out.Denied, d)
	}
	return out
}
