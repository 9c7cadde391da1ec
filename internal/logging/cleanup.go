package logging

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/tutex-backend/internal/models"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const (
	Retention       = 30 * 24 * time.Hour
	cleanupSchedule = "0 3 * * *"
)

// StartCleanup schedules a daily purge of system_logs older than Retention.
// Stop the returned scheduler on shutdown.
func StartCleanup(db *gorm.DB) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC))
	_, err := c.AddFunc(cleanupSchedule, func() {
		deleted, err := PurgeBefore(db, time.Now().Add(-Retention))
		if err != nil {
			slog.Error("log cleanup failed", "action", "log_cleanup", "error", err)
			return
		}
		if deleted > 0 {
			slog.Info("log cleanup completed", "deleted", deleted)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule log cleanup: %w", err)
	}
	c.Start()
	return c, nil
}

// PurgeBefore deletes system logs written before cutoff.
func PurgeBefore(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}
