package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIPKey is the gin context key holding the resolved client address.
const RealIPKey = "real_ip"

// proxy headers checked before the socket address, most trusted first
var ipHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For"}

// RealIP resolves the client address once per request and stores it under RealIPKey.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(RealIPKey, resolveIP(c))
		c.Next()
	}
}

// ClientIP returns the address stored by RealIP, or gin's own guess when the
// middleware did not run.
func ClientIP(c *gin.Context) string {
	if ip := c.GetString(RealIPKey); ip != "" {
		return ip
	}
	return c.ClientIP()
}

func resolveIP(c *gin.Context) string {
	for _, h := range ipHeaders {
		// X-Forwarded-For lists the original client first
		first, _, _ := strings.Cut(c.GetHeader(h), ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}
	return c.ClientIP()
}
