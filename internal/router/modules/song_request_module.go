package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-music-catalog/internal/interface/http"
	"github.com/oksasatya/go-music-catalog/internal/interface/middleware"
)

type SongRequestModule struct {
	Handler  *handlers.SongRequestHandler
	Verifier middleware.CredentialVerifier
	RDB      *redis.Client
}

func NewSongRequestModule(h *handlers.SongRequestHandler, v middleware.CredentialVerifier, rdb *redis.Client) *SongRequestModule {
	return &SongRequestModule{Handler: h, Verifier: v, RDB: rdb}
}

func (m *SongRequestModule) Register(rg *gin.RouterGroup) {
	reqs := rg.Group("/song-requests")
	reqs.Use(middleware.Auth(m.Verifier))
	reqs.POST("", middleware.RateLimit(m.RDB, 20, time.Hour, middleware.KeyByUserID(), nil), m.Handler.Submit)

	admin := reqs.Group("")
	admin.Use(middleware.AdminOnly())
	{
		admin.GET("", m.Handler.ListPending)
		admin.POST("/:id/accept", m.Handler.Accept)
		admin.DELETE("/:id/decline", m.Handler.Decline)
	}
}
