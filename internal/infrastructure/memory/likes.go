package memory

import (
	"context"

	"github.com/oksasatya/go-music-catalog/internal/domain/errs"
	"github.com/oksasatya/go-music-catalog/internal/domain/repository"
)

type LikeRepository struct{ s *Store }

// WithinTx holds the store lock for the whole of fn and applies staged
// mutations only when fn succeeds.
func (r *LikeRepository) WithinTx(_ context.Context, fn func(tx repository.LikeTx) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tx := &likeTx{s: r.s, members: map[[2]string]bool{}, counters: map[string]int{}}
	if err := fn(tx); err != nil {
		return err
	}
	tx.apply()
	return nil
}

type likeTx struct {
	s        *Store
	members  map[[2]string]bool
	counters map[string]int
}

func (t *likeTx) LockSong(_ context.Context, songID string) (int, error) {
	song, ok := t.s.songs[songID]
	if !ok {
		return 0, errs.ErrNotFound
	}
	if n, staged := t.counters[songID]; staged {
		return n, nil
	}
	return song.Likes, nil
}

func (t *likeTx) IsLiked(_ context.Context, userID, songID string) (bool, error) {
	if v, staged := t.members[[2]string{userID, songID}]; staged {
		return v, nil
	}
	_, ok := t.s.likes[userID][songID]
	return ok, nil
}

func (t *likeTx) AddLike(_ context.Context, userID, songID string) error {
	t.members[[2]string{userID, songID}] = true
	return nil
}

func (t *likeTx) RemoveLike(_ context.Context, userID, songID string) error {
	t.members[[2]string{userID, songID}] = false
	return nil
}

func (t *likeTx) SetLikes(_ context.Context, songID string, likes int) error {
	if _, ok := t.s.songs[songID]; !ok {
		return errs.ErrNotFound
	}
	t.counters[songID] = likes
	return nil
}

func (t *likeTx) apply() {
	for key, liked := range t.members {
		userID, songID := key[0], key[1]
		if !liked {
			delete(t.s.likes[userID], songID)
			continue
		}
		if t.s.likes[userID] == nil {
			t.s.likes[userID] = map[string]struct{}{}
		}
		t.s.likes[userID][songID] = struct{}{}
	}
	for songID, n := range t.counters {
		t.s.songs[songID].Likes = n
	}
}

var _ repository.LikeRepository = (*LikeRepository)(nil)
