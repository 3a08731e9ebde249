// Package middleware contains any custom middleware used in the app
package middleware

import (
	"venturas/murmur-api/util"

	"github.com/gin-gonic/gin"
)

// NewRequestIDMiddleware returns a middleware that tags every incoming
// request with a random ID under the requestID context key
func NewRequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("requestID", util.RandStr(10))
		c.Next()
	}
}
