package cron

import (
	"time"

	"coachly/services/notification"

	"go.uber.org/zap"
)

// sweepInterval is how often the retention pass runs. Trashed notifications
// expire 30 days after trashing; hourly granularity is plenty.
const sweepInterval = time.Hour

// InitRetentionSweeper periodically flips expired trash into the terminal
// deleted status. Rows are never physically removed here.
func InitRetentionSweeper(svc notification.NotificationService, logger *zap.Logger) {
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		for {
			if count, err := svc.SweepExpiredTrash(); err != nil {
				logger.Error("retention sweep failed", zap.Error(err))
			} else if count > 0 {
				logger.Info("retention sweep moved expired trash to deleted", zap.Int64("count", count))
			}
			<-ticker.C
		}
	}()
}
