package server

import (
	"context"
	"time"

	"github.com/dmitrijs2005/plantguard/internal/logging"
)

type tokenPurger interface {
	PurgeExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}

// runTokenCleaner deletes expired refresh tokens every interval until ctx is
// cancelled. A failed pass is logged and retried on the next tick.
func runTokenCleaner(ctx context.Context, p tokenPurger, interval time.Duration, log logging.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := p.PurgeExpiredTokens(ctx, time.Now())
			if err != nil {
				log.Error(ctx, "failed to purge expired refresh tokens", "error", err)
				continue
			}
			if n > 0 {
				log.Info(ctx, "purged expired refresh tokens", "removed", n)
			}
		}
	}
}
