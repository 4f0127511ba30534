package router

import (
	"github.com/oksasatya/go-music-catalog/internal/container"
	handlers "github.com/oksasatya/go-music-catalog/internal/interface/http"
	"github.com/oksasatya/go-music-catalog/internal/router/modules"
)

// InitModules builds the handlers from the container and registers every module with the registry.
// This function should be called once during application startup.
func InitModules(r *Registry, c *container.Container) {
	cfg := c.Config

	var db handlers.Pinger
	if c.Pool != nil {
		db = c.Pool
	}

	authHandler := handlers.NewAuthHandler(c.Auth, c.Logger, cfg.CookieDomain, cfg.CookieSecure)
	songHandler := handlers.NewSongHandler(c.Catalog, c.Likes, c.Songs, c.Logger, cfg.UploadMaxBytes)
	requestHandler := handlers.NewSongRequestHandler(c.Requests, c.Logger, cfg.UploadMaxBytes)

	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(db)))
	r.Add(modules.NewAuthModule(authHandler, c.Auth, c.Redis))
	r.Add(modules.NewSongModule(songHandler, c.Auth, c.Redis))
	r.Add(modules.NewSongRequestModule(requestHandler, c.Auth, c.Redis))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
}
