package auth

import (
	"net/http"
	"venturas/murmur-api/internal"
	"venturas/murmur-api/internal/service"
	"venturas/murmur-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Refresh exchanges a live refresh cookie for a new access token. The
// cookie's signature was already checked by the refresh guard; session
// liveness is decided here.
func Refresh(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)
	email := c.MustGet("email").(string)
	refreshToken := c.MustGet("refreshToken").(string)

	accessToken, err := d.Auth.Refresh(userID, refreshToken, email)
	if err != nil {
		if service.IsSessionFailure(err) {
			zap.L().Debug("Refresh rejected", zap.Error(err), zap.String("requestID", requestID))

			c.JSON(http.StatusUnauthorized, gin.H{
				"error":     middleware.SessionExpiredMsg,
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to refresh access token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken": accessToken,
		"requestID":   requestID,
	})
}
