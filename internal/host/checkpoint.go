package host

import (
	"context"
	"time"
)

// RunCheckpoints saves the state every interval until ctx is done. A failed
// save is logged and retried on the next tick. It returns immediately when
// interval is not positive or no store is configured.
func (h *Host) RunCheckpoints(ctx context.Context, interval time.Duration) error {
	if interval <= 0 || h.store == nil {
		return nil
	}
	h.logger.Info().Dur("interval", interval).Msg("checkpoint: started")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if err := h.Suspend(ctx); err != nil {
			h.metrics.observeCheckpointError()
			h.logger.Error().Err(err).Msg("checkpoint: save failed")
		}
	}
}
