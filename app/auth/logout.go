package auth

import (
	"net/http"
	"venturas/murmur-api/internal"
	"venturas/murmur-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logout deactivates the session behind the refresh cookie and clears
// it. Deliberately unguarded and idempotent: logging out with an
// expired or garbage cookie still answers 200.
func Logout(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	if refreshToken, err := c.Cookie(middleware.RefreshCookie); err == nil && refreshToken != "" {
		if err := d.Auth.Logout(refreshToken); err != nil {
			zap.L().Error("Failed to deactivate session on logout", zap.Error(err), zap.String("requestID", requestID))
		}
	}

	clearRefreshCookie(c)

	c.JSON(http.StatusOK, gin.H{
		"message":   "Logout successful",
		"requestID": requestID,
	})
}

// LogoutAll revokes every session of the authenticated user.
func LogoutAll(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	if err := d.Auth.LogoutAll(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to revoke all sessions", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	clearRefreshCookie(c)

	c.JSON(http.StatusOK, gin.H{
		"message":   "Logout from all devices successful",
		"requestID": requestID,
	})
}
