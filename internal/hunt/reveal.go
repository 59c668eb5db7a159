package hunt

import (
	"context"
	"time"
)

// DefaultRevealInterval paces the incremental shortlist reveal.
const DefaultRevealInterval = 500 * time.Millisecond

// Reveal emits the shortlist items one at a time, waiting interval between
// steps. The sequence stops cleanly when ctx is cancelled or emit returns an
// error, so an abandoned hunt never keeps running.
func Reveal(ctx context.Context, shortlist []string, interval time.Duration, emit func(item string) error) error {
	if interval <= 0 {
		interval = DefaultRevealInterval
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for i, item := range shortlist {
		if i > 0 {
			timer.Reset(interval)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
		if err := emit(item); err != nil {
			return err
		}
	}
	return nil
}
