package memory

import (
	"context"
	"fmt"

	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
	"github.com/oksasatya/go-music-catalog/internal/domain/errs"
	"github.com/oksasatya/go-music-catalog/internal/domain/repository"
)

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, taken := r.s.usernames[u.Username]; taken {
		return fmt.Errorf("username %q: %w", u.Username, errs.ErrConflict)
	}
	u.ID = newID()
	u.CreatedAt = r.s.now()
	u.UpdatedAt = u.CreatedAt
	u.LikedSongs = []string{}
	cpy := *u
	r.s.users[u.ID] = &cpy
	r.s.usernames[u.Username] = u.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cpy := *u
	cpy.LikedSongs = r.s.likedBy(id)
	return &cpy, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	id, ok := r.s.usernames[username]
	r.s.mu.Unlock()
	if !ok {
		return nil, errs.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) SetAdmin(_ context.Context, id string, isAdmin bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return errs.ErrNotFound
	}
	u.IsAdmin = isAdmin
	u.UpdatedAt = r.s.now()
	return nil
}

// Delete removes a user and its likes, keeping song counters in step.
func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return errs.ErrNotFound
	}
	for songID := range r.s.likes[id] {
		if song, ok := r.s.songs[songID]; ok {
			song.Likes = max(0, song.Likes-1)
		}
	}
	delete(r.s.likes, id)
	delete(r.s.usernames, u.Username)
	delete(r.s.users, id)
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
