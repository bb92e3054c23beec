package telegram

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog/log"
)

// RetryPolicy bounds delivery retries. Only transient (timeout) failures are
// retried, with a fixed backoff between attempts; any other failure is
// returned immediately and is fatal to the run.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// Do runs op until it succeeds, fails non-transiently, or attempts run out.
func (p RetryPolicy) Do(ctx context.Context, op func(context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	var last error
	for i := 0; i < attempts; i++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return err
		}
		last = err
		if i < attempts-1 {
			log.Warn().Err(err).Int("attempt", i+1).Msg("delivery timeout; retrying")
			select {
			case <-time.After(p.Backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return fmt.Errorf("delivery retries exhausted: %w", last)
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
