package repository

import (
	"context"

	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
)

type SongRequestRepository interface {
	Create(ctx context.Context, r *entity.SongRequest) error
	GetByID(ctx context.Context, id string) (*entity.SongRequest, error)
	// ListPending returns pending requests oldest first.
	ListPending(ctx context.Context) ([]entity.SongRequest, error)
	// Accept inserts song and marks the request accepted in one transaction.
	// A request that is no longer pending yields errs.ErrConflict.
	Accept(ctx context.Context, id string, song *entity.Song) error
	// Decline marks a pending request declined.
	Decline(ctx context.Context, id string) error
}
