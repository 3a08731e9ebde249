package auth

import (
	"errors"
	"net/http"
	"venturas/murmur-api/internal"
	"venturas/murmur-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type revokeBody struct {
	SessionID string `json:"sessionId"`
}

// RevokeSession deactivates one of the caller's sessions by its
// opaque handle. 403 covers both a foreign and an unknown handle.
func RevokeSession(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data revokeBody
	if err := c.ShouldBind(&data); err != nil || data.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "sessionId is required",
			"requestID": requestID,
		})
		return
	}

	if err := d.Auth.Sessions.Revoke(userID, data.SessionID); err != nil {
		if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":     "Session not found or you don't have permission to revoke it.",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to revoke session", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Session revoked successfully",
		"requestID": requestID,
	})
}
