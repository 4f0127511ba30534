package memory

import (
	"context"
	"slices"

	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
	"github.com/oksasatya/go-music-catalog/internal/domain/errs"
	"github.com/oksasatya/go-music-catalog/internal/domain/repository"
)

type SongRepository struct{ s *Store }

func (r *SongRepository) Create(_ context.Context, song *entity.Song) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.insertSong(song)
	return nil
}

// insertSong assigns identity and appends to the catalog. Caller holds mu.
func (s *Store) insertSong(song *entity.Song) {
	song.ID = newID()
	song.Likes = 0
	song.CreatedAt = s.now()
	cpy := *song
	s.songs[song.ID] = &cpy
	s.songOrder = append(s.songOrder, song.ID)
}

func (r *SongRepository) GetByID(_ context.Context, id string) (*entity.Song, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	song, ok := r.s.songs[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cpy := *song
	return &cpy, nil
}

func (r *SongRepository) List(_ context.Context, search string) ([]entity.CatalogEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.CatalogEntry, 0, len(r.s.songOrder))
	for _, id := range r.s.songOrder {
		song := r.s.songs[id]
		if search != "" && !song.Matches(search) {
			continue
		}
		out = append(out, r.s.entry(song))
	}
	return out, nil
}

func (r *SongRepository) ListByIDs(_ context.Context, ids []string) ([]entity.CatalogEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.CatalogEntry, 0, len(ids))
	for _, id := range r.s.songOrder {
		if slices.Contains(ids, id) {
			out = append(out, r.s.entry(r.s.songs[id]))
		}
	}
	return out, nil
}

func (r *SongRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.songs[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.s.songs, id)
	r.s.songOrder = slices.DeleteFunc(r.s.songOrder, func(v string) bool { return v == id })
	for _, set := range r.s.likes {
		delete(set, id)
	}
	return nil
}

var _ repository.SongRepository = (*SongRepository)(nil)
