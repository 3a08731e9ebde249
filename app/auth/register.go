// Package auth contains the handlers for the account and session
// lifecycle endpoints
package auth

import (
	"net/http"
	"time"
	"venturas/murmur-api/internal"
	"venturas/murmur-api/internal/service"
	"venturas/murmur-api/model"
	"venturas/murmur-api/pkg/security"
	"venturas/murmur-api/validators"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const verificationTTL = 24 * time.Hour

type registerBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Register(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data registerBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.NameValidator(data.Name); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	email := service.NormalizeEmail(data.Email)

	var found bool

	r := d.DB.Model(model.User{}).
		Select("count(*) > 0").
		Where("email = ?", email).
		Find(&found)
	if r.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check if user is registered", zap.Error(r.Error), zap.String("requestID", requestID))
		return
	}

	if found {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "This email is already registered. Please login or use a different email",
			"requestID": requestID,
		})
		return
	}

	hash, err := d.Argon.Hash(data.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	userID, err := gonanoid.New()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate user ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	expiresAt := time.Now().Add(verificationTTL)

	verifToken, err := security.MakeVerificationToken(&security.VerificationTokenOpts{
		UserID:    userID,
		ExpiresAt: &expiresAt,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate verification token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = d.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.User{
			ID:           userID,
			Name:         data.Name,
			Email:        email,
			PasswordHash: hash,
		}).Error; err != nil {
			return err
		}

		return tx.Create(verifToken).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// Fire and forget. A failed delivery must not fail the
	// registration, the user can request a resend
	go func() {
		if err := d.Mail.SendVerificationMail(verifToken, email, data.Name); err != nil {
			zap.L().Error("Failed to send verification email", zap.Error(err), zap.String("requestID", requestID))
		}
	}()

	c.JSON(http.StatusCreated, gin.H{
		"message":   "User created. Please check your email to verify your account.",
		"requestID": requestID,
	})
}
