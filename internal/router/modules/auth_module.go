package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-music-catalog/internal/interface/http"
	"github.com/oksasatya/go-music-catalog/internal/interface/middleware"
)

// AuthModule wires registration and sessions.
// Public: POST /api/register, POST /api/login
// Protected: POST /api/logout, GET /api/me
type AuthModule struct {
	Handler  *handlers.AuthHandler
	Verifier middleware.CredentialVerifier
	RDB      *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, v middleware.CredentialVerifier, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Verifier: v, RDB: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public with rate limiting
	registerLimiter := middleware.RateLimit(m.RDB, 10, time.Minute, middleware.KeyByIPAndPath(), nil) // 10 req/min per IP
	loginLimiter := middleware.RateLimit(m.RDB, 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)

	// Protected
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Verifier))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/me", m.Handler.Me)
	}
}
