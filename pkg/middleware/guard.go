package middleware

import (
	"net/http"
	"strings"
	"venturas/murmur-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionExpiredMsg is the single message every session/token failure
// collapses into. Clients never learn which check failed.
const SessionExpiredMsg = "Session expired. Please log in again."

// RefreshCookie is the name of the HttpOnly cookie carrying the
// refresh token.
const RefreshCookie = "refresh_token"

func deny(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":     SessionExpiredMsg,
		"requestID": requestID,
	})
}

// NewAccessGuard gates protected endpoints. The refresh cookie's
// session is checked before the bearer token on purpose: a revoked
// session must lock out an access token that is still
// cryptographically unexpired.
func NewAccessGuard(auth *service.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		refreshToken, err := c.Cookie(RefreshCookie)
		if err != nil {
			deny(c)
			return
		}

		claims, err := auth.Tokens.VerifyRefreshToken(refreshToken)
		if err != nil {
			zap.L().Debug("Refresh token failed verification", zap.Error(err), zap.String("requestID", requestID))
			deny(c)
			return
		}

		if _, err := auth.Sessions.Match(claims.Subject, refreshToken); err != nil {
			if !service.IsSessionFailure(err) {
				zap.L().Error("Failed to match session", zap.Error(err), zap.String("requestID", requestID))
			}

			deny(c)
			return
		}

		// Only after the session is confirmed live does the bearer
		// token get a say
		accessClaims, err := auth.Tokens.VerifyAccessToken(bearerToken(c))
		if err != nil {
			zap.L().Debug("Access token failed verification", zap.Error(err), zap.String("requestID", requestID))
			deny(c)
			return
		}

		c.Set("userID", accessClaims.Subject)
		c.Set("email", accessClaims.Email)
		c.Next()
	}
}

// NewRefreshGuard gates the endpoints that only need a live refresh
// cookie (refresh, session listing). Session matching is left to the
// handler, which needs the matched row anyway.
func NewRefreshGuard(auth *service.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		refreshToken, err := c.Cookie(RefreshCookie)
		if err != nil {
			deny(c)
			return
		}

		claims, err := auth.Tokens.VerifyRefreshToken(refreshToken)
		if err != nil {
			zap.L().Debug("Refresh token failed verification", zap.Error(err), zap.String("requestID", requestID))
			deny(c)
			return
		}

		c.Set("userID", claims.Subject)
		c.Set("email", claims.Email)
		c.Set("refreshToken", refreshToken)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}
