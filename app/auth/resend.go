package auth

import (
	"errors"
	"net/http"
	"time"
	"venturas/murmur-api/internal"
	"venturas/murmur-api/internal/service"
	"venturas/murmur-api/model"
	"venturas/murmur-api/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const resendCooldown = 10 * time.Minute

type resendBody struct {
	Email string `json:"email"`
}

// ResendVerification issues a fresh verification token for an
// unverified account. Always answers 200, whether or not the account
// exists, is verified, or is inside the cooldown window.
func ResendVerification(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	resp := gin.H{
		"message":   "If the account exists and is unverified, a new verification email has been sent.",
		"requestID": requestID,
	}

	var data resendBody
	if err := c.ShouldBind(&data); err != nil || data.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Email field can't be empty",
			"requestID": requestID,
		})
		return
	}

	var user model.User

	err := d.DB.Where("email = ?", service.NormalizeEmail(data.Email)).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			zap.L().Error("Failed to look up user for resend", zap.Error(err), zap.String("requestID", requestID))
		}

		c.JSON(http.StatusOK, resp)
		return
	}

	if user.EmailVerified != nil {
		c.JSON(http.StatusOK, resp)
		return
	}

	var recent int64

	err = d.DB.Model(model.ResendRequest{}).
		Where("user_id = ? AND created_at > ?", user.ID, time.Now().Add(-resendCooldown)).
		Count(&recent).
		Error
	if err != nil || recent > 0 {
		c.JSON(http.StatusOK, resp)
		return
	}

	expiresAt := time.Now().Add(verificationTTL)

	verifToken, err := security.MakeVerificationToken(&security.VerificationTokenOpts{
		UserID:    user.ID,
		ExpiresAt: &expiresAt,
	})
	if err != nil {
		zap.L().Error("Failed to generate verification token", zap.Error(err), zap.String("requestID", requestID))
		c.JSON(http.StatusOK, resp)
		return
	}

	err = d.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(verifToken).Error; err != nil {
			return err
		}

		return tx.Create(&model.ResendRequest{UserID: user.ID}).Error
	})
	if err != nil {
		zap.L().Error("Failed to record resend request", zap.Error(err), zap.String("requestID", requestID))
		c.JSON(http.StatusOK, resp)
		return
	}

	go func() {
		if err := d.Mail.SendVerificationMail(verifToken, user.Email, user.Name); err != nil {
			zap.L().Error("Failed to resend verification email", zap.Error(err), zap.String("requestID", requestID))
		}
	}()

	c.JSON(http.StatusOK, resp)
}
