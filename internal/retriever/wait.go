package retriever

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultPollInterval is the pause between scans in WaitForLink.
const DefaultPollInterval = 2 * time.Second

// WaitForLink scans repeatedly until a link for address appears or ctx ends.
// Only NotFoundError is retried; any other error is returned at once.
func (r *Retriever) WaitForLink(ctx context.Context, address string, interval time.Duration) (*Result, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		result, err := r.Retrieve(ctx, address)
		if err == nil {
			return result, nil
		}

		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("timeout waiting for magic link: %w", err)
			}
			return nil, err
		}
		r.logger.Debug("magic link not available yet", "attempt", attempt, "reason", err)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("timeout waiting for magic link: %w", err)
		case <-ticker.C:
		}
	}
}
