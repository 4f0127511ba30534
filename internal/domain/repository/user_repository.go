package repository

import (
	"context"

	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
)

// UserRepository defines the identity store.
type UserRepository interface {
	// Create inserts a user and fills ID and timestamps. Duplicate usernames yield errs.ErrConflict.
	Create(ctx context.Context, u *entity.User) error
	// GetByID loads a user together with its liked-song set.
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	SetAdmin(ctx context.Context, id string, isAdmin bool) error
	// Delete removes a user; songs it uploaded stay and its likes are withdrawn.
	Delete(ctx context.Context, id string) error
}
