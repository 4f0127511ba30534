package repository

import (
	"context"

	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
)

// SongRepository defines the catalog store.
// List and ListByIDs return entries in insertion order with the uploader resolved;
// IsLiked is left for the caller to fill in.
type SongRepository interface {
	Create(ctx context.Context, s *entity.Song) error
	GetByID(ctx context.Context, id string) (*entity.Song, error)
	List(ctx context.Context, search string) ([]entity.CatalogEntry, error)
	ListByIDs(ctx context.Context, ids []string) ([]entity.CatalogEntry, error)
	Delete(ctx context.Context, id string) error
}

// LikeTx is the view of both stores available inside a like transaction.
type LikeTx interface {
	// LockSong returns the current like counter and holds the song until the transaction ends.
	LockSong(ctx context.Context, songID string) (int, error)
	IsLiked(ctx context.Context, userID, songID string) (bool, error)
	// AddLike has set semantics: adding an existing member is a no-op.
	AddLike(ctx context.Context, userID, songID string) error
	RemoveLike(ctx context.Context, userID, songID string) error
	SetLikes(ctx context.Context, songID string, likes int) error
}

// LikeRepository runs fn atomically: either every LikeTx mutation is applied or none.
type LikeRepository interface {
	WithinTx(ctx context.Context, fn func(tx LikeTx) error) error
}
