package auth

import (
	"errors"
	"net/http"
	"time"
	"venturas/murmur-api/internal"
	"venturas/murmur-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VerifyEmail redeems a verification token. Absent, expired and used
// tokens all get the same 401 so the endpoint can't be used to probe
// token values.
func VerifyEmail(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No verification token provided",
			"requestID": requestID,
		})
		return
	}

	var record model.VerificationToken

	err := d.DB.Where("token = ?", token).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":     "Invalid or expired verification token",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to get verification token record", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if record.Used || record.ExpiresAt.Before(time.Now()) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Invalid or expired verification token",
			"requestID": requestID,
		})
		return
	}

	now := time.Now()

	err = d.DB.Transaction(func(tx *gorm.DB) error {
		// Conditional update so two concurrent redeems can't both
		// succeed
		res := tx.Model(model.VerificationToken{}).
			Where("id = ? AND used = ?", record.ID, false).
			Updates(map[string]any{
				"used":    true,
				"used_at": now,
			})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Model(model.User{}).
			Where("id = ?", record.UserID).
			Update("email_verified", now).
			Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":     "Invalid or expired verification token",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to redeem verification token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Email successfully verified.",
		"requestID": requestID,
	})
}
