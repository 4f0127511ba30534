// Package container builds the application graph once at startup and hands it to the router.
package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-music-catalog/config"
	"github.com/oksasatya/go-music-catalog/internal/application"
	repo "github.com/oksasatya/go-music-catalog/internal/domain/repository"
	"github.com/oksasatya/go-music-catalog/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-music-catalog/internal/infrastructure/postgres"
	"github.com/oksasatya/go-music-catalog/internal/infrastructure/session"
	"github.com/oksasatya/go-music-catalog/pkg/helpers"
)

// Deps are the infrastructure pieces main connected. Optional ones are nil when not configured.
type Deps struct {
	Pool   *pgxpool.Pool // nil selects the in-memory store
	Memory *memory.Store // used when Pool is nil; a fresh store when also nil
	Redis  *redis.Client
	Assets repo.AssetStore
	Index  repo.SongIndex
	Events repo.EventPublisher
}

type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	JWT    *helpers.JWTManager

	UserRepo    repo.UserRepository
	SongRepo    repo.SongRepository
	LikeRepo    repo.LikeRepository
	RequestRepo repo.SongRequestRepository
	Sessions    repo.SessionStore
	Index       repo.SongIndex

	Auth     *application.AuthService
	Catalog  *application.CatalogService
	Likes    *application.LikeService
	Songs    *application.SongService
	Requests *application.SongRequestService
}

func New(cfg *config.Config, logger *logrus.Logger, d Deps) *Container {
	c := &Container{
		Config: cfg,
		Logger: logger,
		Pool:   d.Pool,
		Redis:  d.Redis,
		JWT:    helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
	}

	if d.Pool != nil {
		c.UserRepo = pginfra.NewUserRepository(d.Pool)
		c.SongRepo = pginfra.NewSongRepository(d.Pool)
		c.LikeRepo = pginfra.NewLikeRepository(d.Pool)
		c.RequestRepo = pginfra.NewSongRequestRepository(d.Pool)
	} else {
		store := d.Memory
		if store == nil {
			store = memory.NewStore()
		}
		c.UserRepo = store.Users()
		c.SongRepo = store.Songs()
		c.LikeRepo = store.Likes()
		c.RequestRepo = store.SongRequests()
	}
	if d.Redis != nil {
		c.Sessions = session.NewRedisStore(d.Redis)
	}

	c.Index = d.Index
	c.Auth = application.NewAuthService(c.UserRepo, c.Sessions, c.JWT, logger, cfg.BcryptCost)
	c.Catalog = application.NewCatalogService(c.SongRepo, d.Index, logger)
	c.Likes = application.NewLikeService(c.LikeRepo, logger)
	c.Songs = application.NewSongService(c.SongRepo, d.Assets, d.Index, d.Events, logger, cfg.DefaultCoverURL, cfg.UploadMaxBytes)
	c.Requests = application.NewSongRequestService(c.RequestRepo, d.Assets, d.Index, d.Events, logger, cfg.DefaultCoverURL, cfg.UploadMaxBytes)
	return c
}
