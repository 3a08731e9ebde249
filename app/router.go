// Package app wires the HTTP surface together
package app

import (
	"fmt"
	"time"
	"venturas/murmur-api/app/auth"
	"venturas/murmur-api/app/root"
	"venturas/murmur-api/db"
	"venturas/murmur-api/internal"
	"venturas/murmur-api/internal/service"
	"venturas/murmur-api/pkg/middleware"
	"venturas/murmur-api/pkg/security"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var store = persist.NewMemoryStore(time.Minute)

func NewRouter() (*gin.Engine, error) {
	gdb, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	argon := security.NewArgon()
	tokens := security.NewTokenIssuer()

	d := &internal.Deps{
		DB:     gdb,
		Argon:  argon,
		Tokens: tokens,
		Auth:   service.NewAuth(gdb, argon, tokens),
		Mail:   service.SMTPMailer{},
	}

	router := NewRouterWithDeps(d)

	// Verification tokens expire rarely, sessions churn with every
	// login
	service.TokenCleanup(time.Hour*24, gdb)
	service.SessionCleanup(time.Hour, gdb)

	return router, nil
}

// NewRouterWithDeps builds the engine around externally constructed
// dependencies. Split out so tests can inject their own database and
// mailer.
func NewRouterWithDeps(d *internal.Deps) *gin.Engine {
	router := gin.New()

	rateLimit := viper.GetInt("security.rate_limit")

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{viper.GetString("host.cors_origin")},
			AllowMethods:     []string{"GET", "POST", "OPTIONS", "HEAD"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("requestID", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true

	accessGuard := middleware.NewAccessGuard(d.Auth)
	refreshGuard := middleware.NewRefreshGuard(d.Auth)
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: rateLimit,
		Burst:             rateLimit * 2,
	})

	m := router.Group("/api", rateLimiter, middleware.BodySizeLimiter(1<<20))
	{
		// HEAD /api/heartbeat		-> Used to check if the server is alive
		m.HEAD("/heartbeat", cacheFor(30), root.Heartbeat)
	}

	a := m.Group("/auth")
	{
		// POST /api/auth/register	-> Registers a new user and mails a verification link
		a.POST("/register", func(c *gin.Context) { auth.Register(c, d) })

		// GET /api/auth/verify-email	-> Redeems an emailed verification token
		a.GET("/verify-email", func(c *gin.Context) { auth.VerifyEmail(c, d) })

		// POST /api/auth/resend-verification -> Re-issues a verification token
		a.POST("/resend-verification", func(c *gin.Context) { auth.ResendVerification(c, d) })

		// POST /api/auth/login		-> Validates credentials, returns an access token and sets the refresh cookie
		a.POST("/login", func(c *gin.Context) { auth.Login(c, d) })

		// POST /api/auth/logout	-> Best-effort session deactivation, always 200
		a.POST("/logout", func(c *gin.Context) { auth.Logout(c, d) })

		// POST /api/auth/refresh	-> Exchanges a live refresh cookie for a new access token
		a.POST("/refresh", refreshGuard, func(c *gin.Context) { auth.Refresh(c, d) })

		// GET /api/auth/sessions	-> Lists the caller's active sessions
		a.GET("/sessions", refreshGuard, func(c *gin.Context) { auth.Sessions(c, d) })

		// POST /api/auth/logout-all	-> Revokes every session of the caller
		a.POST("/logout-all", accessGuard, func(c *gin.Context) { auth.LogoutAll(c, d) })

		// GET /api/auth/profile	-> Returns the caller's sanitized user record
		a.GET("/profile", accessGuard, func(c *gin.Context) { auth.Profile(c, d) })

		// POST /api/auth/sessions/revoke -> Deactivates one session by its opaque handle
		a.POST("/sessions/revoke", accessGuard, func(c *gin.Context) { auth.RevokeSession(c, d) })
	}

	return router
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
