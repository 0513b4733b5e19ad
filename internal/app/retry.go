package app

import (
	"context"
	"log"
	"time"
)

const (
	defaultRetryBase = 2 * time.Second
	maxBackoff       = 30 * time.Second
)

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for range failures {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}

// LoadInitial performs the first reload, retrying up to attempts times with
// exponential backoff. It gives up early when ctx ends.
func (s *Syncer) LoadInitial(ctx context.Context, attempts int, base time.Duration) error {
	if attempts < 1 {
		attempts = 1
	}
	if base <= 0 {
		base = defaultRetryBase
	}

	var err error
	for failures := range attempts {
		if err = s.Reload(ctx); err == nil {
			return nil
		}
		if failures == attempts-1 {
			break
		}
		wait := calculateBackoff(failures, base)
		log.Printf("initial load of %s failed (attempt %d/%d), retrying in %s", s.res.Name, failures+1, attempts, wait)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}
