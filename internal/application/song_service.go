package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
	repo "github.com/oksasatya/go-music-catalog/internal/domain/repository"
	"github.com/oksasatya/go-music-catalog/pkg/helpers"
)

// SongService handles admin uploads and deletions.
type SongService struct {
	Songs  repo.SongRepository
	Index  repo.SongIndex
	Events repo.EventPublisher
	Logger *logrus.Logger
	media  *media
}

func NewSongService(songs repo.SongRepository, assets repo.AssetStore, index repo.SongIndex, events repo.EventPublisher, logger *logrus.Logger, defaultCover string, maxBytes int64) *SongService {
	return &SongService{
		Songs:  songs,
		Index:  index,
		Events: events,
		Logger: logger,
		media:  &media{assets: assets, logger: logger, defaultCover: defaultCover, maxBytes: maxBytes},
	}
}

// Upload stores the files, then the song. Assets are removed again when the insert fails.
func (s *SongService) Upload(ctx context.Context, actor *entity.User, in SongInput) (*entity.CatalogEntry, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	if err := in.validate(s.media.maxBytes); err != nil {
		return nil, err
	}
	stored, err := s.media.store(ctx, AudioFolder, ImageFolder, in)
	if err != nil {
		return nil, err
	}

	song := &entity.Song{
		Title:           in.Title,
		Artist:          in.Artist,
		AudioURL:        stored.Audio.URL,
		ImageURL:        stored.ImageURL(s.media.defaultCover),
		UploadedBy:      actor.ID,
		ExternalAssetID: stored.Audio.AssetID,
		ImageAssetID:    stored.Image.AssetID,
	}
	if err := s.Songs.Create(ctx, song); err != nil {
		s.media.discard(ctx, stored)
		return nil, fmt.Errorf("create song: %w", err)
	}
	songsUploaded.Add(1)
	s.index(ctx, song)

	return &entity.CatalogEntry{Song: *song, Uploader: entity.NewUploader(actor.ID, actor.Username)}, nil
}

// Delete removes the song's assets first; if the asset host refuses, the song is kept.
func (s *SongService) Delete(ctx context.Context, actor *entity.User, id string) error {
	if err := RequireAdmin(actor); err != nil {
		return err
	}
	id, err := canonicalID("song", id)
	if err != nil {
		return err
	}
	song, err := s.Songs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	for _, assetID := range []string{song.ExternalAssetID, song.ImageAssetID} {
		if err := s.media.assets.Destroy(ctx, assetID); err != nil {
			return fmt.Errorf("destroy asset of song %s: %w", id, err)
		}
	}
	if err := s.Songs.Delete(ctx, id); err != nil {
		return err
	}

	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			helpers.LogWarn(s.Logger, "remove song from index failed", err, logrus.Fields{"song_id": id})
		}
	}
	publish(ctx, s.Events, s.Logger, entity.NewEvent(entity.EventSongDeleted, map[string]any{
		"song_id": id,
		"title":   song.Title,
		"artist":  song.Artist,
	}))
	return nil
}

func (s *SongService) index(ctx context.Context, song *entity.Song) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, song); err != nil {
		helpers.LogWarn(s.Logger, "index song failed", err, logrus.Fields{"song_id": song.ID})
	}
}
