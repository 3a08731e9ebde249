package service

import (
	"time"
	"venturas/murmur-api/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TokenCleanup periodically deletes verification tokens that are used
// or past their expiry
func TokenCleanup(t time.Duration, db *gorm.DB) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Token cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			res := db.
				Where("used = ? OR expires_at < ?", true, time.Now()).
				Delete(model.VerificationToken{})
			if res.Error != nil {
				zap.L().Error("Failed to cleanup verification tokens", zap.Error(res.Error))
				continue
			}

			if res.RowsAffected > 0 {
				zap.L().Debug("Cleaned up verification tokens", zap.Int64("count", res.RowsAffected))
			}
		}
	}()
}
