package application

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
	repo "github.com/oksasatya/go-music-catalog/internal/domain/repository"
	"github.com/oksasatya/go-music-catalog/pkg/helpers"
)

// CatalogService answers catalog reads for one viewer.
// Index is optional; when set it narrows searches and the store stays authoritative.
type CatalogService struct {
	Songs  repo.SongRepository
	Index  repo.SongIndex
	Logger *logrus.Logger
}

func NewCatalogService(songs repo.SongRepository, index repo.SongIndex, logger *logrus.Logger) *CatalogService {
	return &CatalogService{Songs: songs, Index: index, Logger: logger}
}

// List returns the catalog in insertion order, optionally filtered by a
// case-insensitive substring of title or artist, with IsLiked set for viewer.
// Only the empty term lists everything; whitespace is part of the term.
func (s *CatalogService) List(ctx context.Context, viewer *entity.User, search string) ([]entity.CatalogEntry, error) {
	// Stored titles are valid UTF-8 without NUL, so such a term matches nothing.
	if !utf8.ValidString(search) || strings.ContainsRune(search, 0) {
		return []entity.CatalogEntry{}, nil
	}
	entries, err := s.find(ctx, search)
	if err != nil {
		return nil, err
	}
	liked := map[string]struct{}{}
	if viewer != nil {
		liked = viewer.LikedSet()
	}
	for i := range entries {
		_, entries[i].IsLiked = liked[entries[i].Song.ID]
	}
	return entries, nil
}

func (s *CatalogService) find(ctx context.Context, term string) ([]entity.CatalogEntry, error) {
	if term == "" || s.Index == nil {
		return s.Songs.List(ctx, term)
	}
	ids, err := s.Index.Search(ctx, term)
	if err != nil {
		helpers.LogWarn(s.Logger, "search index unusable, falling back to store", err, logrus.Fields{"term": term})
		return s.Songs.List(ctx, term)
	}
	entries, err := s.Songs.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	// The index may lag behind renames; keep only true matches.
	out := entries[:0]
	for _, e := range entries {
		if e.Song.Matches(term) {
			out = append(out, e)
		}
	}
	return out, nil
}
