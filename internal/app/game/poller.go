package game

import (
	"context"
	"time"
)

// Poll refreshes the session of ctrl every interval while it is in progress. It returns
// when ctx is done or the session leaves IN_PROGRESS. A fetch already sent is not
// aborted by ctx; its response is still applied.
func Poll(ctx context.Context, ctrl *Controller, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	ctrl.logger.Debug().Dur("interval", interval).Msg("Polling started")
	defer ctrl.logger.Debug().Msg("Polling stopped")

	for {
		if !ctrl.InProgress() {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ctrl.FetchSession(context.WithoutCancel(ctx))
		}
	}
}
