package worker

import (
	"context"
	"time"
)

type Sweeper interface {
	Sweep(ctx context.Context) ([]string, error)
}

// RunReconciler sweeps once per interval until ctx is cancelled.
func RunReconciler(ctx context.Context, sweeper Sweeper, interval time.Duration, logger Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.InfoWithContextf(ctx, "[Reconcile] Sweeping orphaned assets every %s", interval)

	for {
		select {
		case <-ctx.Done():
			logger.InfoWithContextf(ctx, "[Reconcile] Shutting down...")
			return
		case <-ticker.C:
			removed, err := sweeper.Sweep(ctx)
			if err != nil {
				logger.ErrorWithContextf(ctx, err, "[Reconcile] Sweep failed")
				continue
			}
			logger.InfoWithContextf(ctx, "[Reconcile] Sweep removed %d assets", len(removed))
		}
	}
}
