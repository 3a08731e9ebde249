package service

import (
	"time"
	"venturas/murmur-api/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionCleanup periodically deletes sessions that expired or were
// revoked. Match already rejects expired sessions on sight, the sweep
// only keeps the table small.
func SessionCleanup(t time.Duration, db *gorm.DB) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Session cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			res := db.
				Where("active = ? OR expires_at < ?", false, time.Now()).
				Delete(model.Session{})
			if res.Error != nil {
				zap.L().Error("Failed to cleanup sessions", zap.Error(res.Error))
				continue
			}

			if res.RowsAffected > 0 {
				zap.L().Debug("Cleaned up stale sessions", zap.Int64("count", res.RowsAffected))
			}
		}
	}()
}
