package main

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/oksasatya/go-music-catalog/config"
	"github.com/oksasatya/go-music-catalog/internal/application"
	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
	pginfra "github.com/oksasatya/go-music-catalog/internal/infrastructure/postgres"
	"github.com/oksasatya/go-music-catalog/internal/infrastructure/search"
	"github.com/oksasatya/go-music-catalog/pkg/helpers"
)

type runner struct {
	cfg    *config.Config
	logger *logrus.Logger
}

func (r *runner) pool(ctx context.Context) (*pgxpool.Pool, error) {
	return pginfra.NewPool(ctx, r.cfg.PostgresDSN(), r.cfg.DBMaxConns, r.cfg.DBMinConns, r.cfg.DBMaxConnLife)
}

func (r *runner) auth(pool *pgxpool.Pool) *application.AuthService {
	jwt := helpers.NewJWTManager(r.cfg.JWTSecret, r.cfg.JWTTTL)
	return application.NewAuthService(pginfra.NewUserRepository(pool), nil, jwt, r.logger, r.cfg.BcryptCost)
}

func (r *runner) Admin(ctx context.Context, cmd *cli.Command) error {
	pool, err := r.pool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	u, created, err := r.auth(pool).EnsureAdmin(ctx, cmd.String("username"), cmd.String("password"))
	if err != nil {
		return err
	}
	r.logger.WithFields(logrus.Fields{"id": u.ID, "username": u.Username, "created": created}).Info("admin ensured")
	return nil
}

func (r *runner) Promote(ctx context.Context, cmd *cli.Command) error {
	pool, err := r.pool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	u, err := r.auth(pool).SetAdmin(ctx, cmd.String("username"), !cmd.Bool("revoke"))
	if err != nil {
		return err
	}
	r.logger.WithFields(logrus.Fields{"id": u.ID, "username": u.Username, "is_admin": u.IsAdmin}).Info("admin flag updated")
	return nil
}

func (r *runner) RemoveUser(ctx context.Context, cmd *cli.Command) error {
	pool, err := r.pool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	username := cmd.String("username")
	if err := r.auth(pool).DeleteUser(ctx, username); err != nil {
		return err
	}
	r.logger.WithField("username", username).Info("user removed")
	return nil
}

func (r *runner) Reindex(ctx context.Context, _ *cli.Command) error {
	addrs := r.cfg.ESAddrs()
	if len(addrs) == 0 {
		return errors.New("ELASTICSEARCH_ADDRS is not set")
	}
	es, err := helpers.NewESClient(helpers.ESOptions{Addrs: addrs, Username: r.cfg.ElasticsearchUser, Password: r.cfg.ElasticsearchPass})
	if err != nil {
		return err
	}
	pool, err := r.pool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	entries, err := pginfra.NewSongRepository(pool).List(ctx, "")
	if err != nil {
		return err
	}
	songs := make([]entity.Song, 0, len(entries))
	for _, e := range entries {
		songs = append(songs, e.Song)
	}
	if err := search.NewSongIndex(es, r.cfg.ESSongsIndex).Reindex(ctx, songs); err != nil {
		return err
	}
	r.logger.WithFields(logrus.Fields{"index": r.cfg.ESSongsIndex, "songs": len(songs)}).Info("reindex complete")
	return nil
}
