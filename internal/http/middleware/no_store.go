package middleware

import "github.com/gin-gonic/gin"

// NoStore disables client and proxy caching of API responses.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
