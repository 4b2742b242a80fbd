package jobs

import (
	"context"
	"time"

	"labreserve-backend/internal/logger"
)

// ExpireReagents flips reagents past their expiry date to EXPIRED so that new
// requests can no longer reserve them. Existing holds are untouched and get
// resolved when their schedule closes.
func (jr *JobRunner) ExpireReagents() {
	jr.runWithRecovery("ExpireReagents", func() {
		ctx := context.Background()

		expired, err := jr.store.Reagents().MarkExpired(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to expire reagents", "error", err)
			return
		}

		logger.Info("Reagent expiry sweep finished", "expired", expired)
	})
}
