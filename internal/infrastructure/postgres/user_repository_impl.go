package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
	"github.com/oksasatya/go-music-catalog/internal/domain/errs"
	"github.com/oksasatya/go-music-catalog/internal/domain/repository"
)

type UserRepository struct {
	db PgxPool
}

func NewUserRepository(db PgxPool) *UserRepository {
	return &UserRepository{db: db}
}

const selectUser = `
		SELECT u.id::text, u.username, u.password_hash, u.is_admin, u.created_at, u.updated_at,
		       COALESCE(array_agg(l.song_id::text) FILTER (WHERE l.song_id IS NOT NULL), '{}')
		FROM users u
		LEFT JOIN user_liked_songs l ON l.user_id = u.id`

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, is_admin)
		VALUES ($1, $2, $3)
		RETURNING id::text, created_at, updated_at
	`, u.Username, u.PasswordHash, u.IsAdmin)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username %q: %w", u.Username, errs.ErrConflict)
		}
		return err
	}
	u.LikedSongs = []string{}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, selectUser+`
		WHERE u.id = $1
		GROUP BY u.id`, id)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getOne(ctx, selectUser+`
		WHERE u.username = $1
		GROUP BY u.id`, username)
}

func (r *UserRepository) getOne(ctx context.Context, q string, arg any) (*entity.User, error) {
	u := &entity.User{}
	err := r.db.QueryRow(ctx, q, arg).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsAdmin,
		&u.CreatedAt, &u.UpdatedAt, &u.LikedSongs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	res, err := r.db.Exec(ctx, `
		UPDATE users SET is_admin = $2, updated_at = now()
		WHERE id = $1
	`, id, isAdmin)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes a user. Counters of the songs it liked are decremented in the same
// transaction; the memberships themselves go with the cascade.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			UPDATE songs SET likes = GREATEST(likes - 1, 0)
			WHERE id IN (SELECT song_id FROM user_liked_songs WHERE user_id = $1)
		`, id); err != nil {
			return err
		}
		res, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if res.RowsAffected() == 0 {
			return errs.ErrNotFound
		}
		return nil
	})
}

var _ repository.UserRepository = (*UserRepository)(nil)
