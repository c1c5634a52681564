package jitter

import (
	"context"
	"math/rand/v2"
	"time"
)

// Duration returns a duration uniformly drawn from [min, min+span).
func Duration(min, span time.Duration) time.Duration {
	if span <= 0 {
		return min
	}
	return min + time.Duration(rand.Int64N(int64(span)))
}

// Wait sleeps for a jittered duration or until ctx is done, whichever
// comes first.
func Wait(ctx context.Context, min, span time.Duration) error {
	t := time.NewTimer(Duration(min, span))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
