package auth

import (
	"net/http"
	"venturas/murmur-api/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Profile(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	user, err := d.Auth.Profile(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch profile", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, user)
}
