package auth

import (
	"errors"
	"net/http"
	"venturas/murmur-api/config"
	"venturas/murmur-api/internal"
	"venturas/murmur-api/internal/service"
	"venturas/murmur-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Email field can't be empty",
			"requestID": requestID,
		})
		return
	}

	if data.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Password field can't be empty",
			"requestID": requestID,
		})
		return
	}

	user, err := d.Auth.ValidateUser(data.Email, data.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":     "Invalid credentials",
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrEmailNotVerified):
			c.JSON(http.StatusForbidden, gin.H{
				"error":     "Please verify your email before logging in.",
				"requestID": requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to validate user", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	pair, err := d.Auth.Login(user, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to log user in", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	setRefreshCookie(c, pair.RefreshToken, int(d.Tokens.RefreshTTL.Seconds()))

	c.JSON(http.StatusOK, gin.H{
		"accessToken": pair.AccessToken,
		"requestID":   requestID,
	})
}

func setRefreshCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.RefreshCookie, token, maxAge, "/", "", config.Production(), true)
}

func clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.RefreshCookie, "", -1, "/", "", config.Production(), true)
}
