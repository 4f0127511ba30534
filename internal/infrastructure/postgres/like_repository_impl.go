package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-music-catalog/internal/domain/errs"
	"github.com/oksasatya/go-music-catalog/internal/domain/repository"
)

// LikeRepository serializes toggles per song with a row lock taken in LockSong.
type LikeRepository struct {
	db PgxPool
}

func NewLikeRepository(db PgxPool) *LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) WithinTx(ctx context.Context, fn func(tx repository.LikeTx) error) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		return fn(likeTx{tx: tx})
	})
}

type likeTx struct {
	tx pgx.Tx
}

func (t likeTx) LockSong(ctx context.Context, songID string) (int, error) {
	var likes int
	err := t.tx.QueryRow(ctx, `SELECT likes FROM songs WHERE id = $1 FOR UPDATE`, songID).Scan(&likes)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, errs.ErrNotFound
	}
	return likes, err
}

func (t likeTx) IsLiked(ctx context.Context, userID, songID string) (bool, error) {
	var liked bool
	err := t.tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM user_liked_songs WHERE user_id = $1 AND song_id = $2)
	`, userID, songID).Scan(&liked)
	return liked, err
}

func (t likeTx) AddLike(ctx context.Context, userID, songID string) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO user_liked_songs (user_id, song_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, userID, songID)
	return err
}

func (t likeTx) RemoveLike(ctx context.Context, userID, songID string) error {
	_, err := t.tx.Exec(ctx, `DELETE FROM user_liked_songs WHERE user_id = $1 AND song_id = $2`, userID, songID)
	return err
}

func (t likeTx) SetLikes(ctx context.Context, songID string, likes int) error {
	_, err := t.tx.Exec(ctx, `UPDATE songs SET likes = $2 WHERE id = $1`, songID, likes)
	return err
}

var _ repository.LikeRepository = (*LikeRepository)(nil)
