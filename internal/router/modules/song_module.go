package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-music-catalog/internal/interface/http"
	"github.com/oksasatya/go-music-catalog/internal/interface/middleware"
)

// SongModule exposes the catalog.
// User: GET /api/songs, POST /api/songs/:id/like
// Admin: POST /api/songs, DELETE /api/songs/:id
type SongModule struct {
	Handler  *handlers.SongHandler
	Verifier middleware.CredentialVerifier
	RDB      *redis.Client
}

func NewSongModule(h *handlers.SongHandler, v middleware.CredentialVerifier, rdb *redis.Client) *SongModule {
	return &SongModule{Handler: h, Verifier: v, RDB: rdb}
}

func (m *SongModule) Register(rg *gin.RouterGroup) {
	songs := rg.Group("/songs")
	songs.Use(middleware.Auth(m.Verifier))
	songs.Use(
		middleware.RateLimit(m.RDB, 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(m.RDB, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		songs.GET("", m.Handler.List)
		songs.POST("/:id/like", m.Handler.ToggleLike)
	}

	admin := songs.Group("")
	admin.Use(middleware.AdminOnly())
	{
		admin.POST("", m.Handler.Upload)
		admin.DELETE("/:id", m.Handler.Delete)
	}
}
