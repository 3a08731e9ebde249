package auth

import (
	"net/http"
	"time"
	"venturas/murmur-api/internal"
	"venturas/murmur-api/internal/service"
	"venturas/murmur-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type sessionView struct {
	SessionID  string    `json:"sessionId"`
	DeviceInfo string    `json:"deviceInfo"`
	IPAddress  string    `json:"ipAddress"`
	LastUsed   time.Time `json:"lastUsed"`
	Expires    time.Time `json:"expires"`
	Active     bool      `json:"active"`
	Current    bool      `json:"current"`
}

// Sessions lists the caller's active sessions. The session handle
// returned here is an opaque row id, never a token value.
func Sessions(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)
	refreshToken := c.MustGet("refreshToken").(string)

	current, err := d.Auth.Sessions.Match(userID, refreshToken)
	if err != nil {
		if service.IsSessionFailure(err) {
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

		zap.L().Error("Failed to match current session", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	sessions, err := d.Auth.Sessions.ListActive(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list sessions", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	views := make([]sessionView, len(sessions))
	for i, s := range sessions {
		views[i] = sessionView{
			SessionID:  s.ID,
			DeviceInfo: s.DeviceInfo,
			IPAddress:  s.IPAddress,
			LastUsed:   s.LastUsed,
			Expires:    s.ExpiresAt,
			Active:     s.Active,
			Current:    s.ID == current.ID,
		}
	}

	c.JSON(http.StatusOK, views)
}
