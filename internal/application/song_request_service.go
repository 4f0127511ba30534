package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
	"github.com/oksasatya/go-music-catalog/internal/domain/errs"
	repo "github.com/oksasatya/go-music-catalog/internal/domain/repository"
	"github.com/oksasatya/go-music-catalog/pkg/helpers"
)

// SongRequestService lets users propose songs and admins review them.
type SongRequestService struct {
	Requests repo.SongRequestRepository
	Index    repo.SongIndex
	Events   repo.EventPublisher
	Logger   *logrus.Logger
	media    *media
}

func NewSongRequestService(requests repo.SongRequestRepository, assets repo.AssetStore, index repo.SongIndex, events repo.EventPublisher, logger *logrus.Logger, defaultCover string, maxBytes int64) *SongRequestService {
	return &SongRequestService{
		Requests: requests,
		Index:    index,
		Events:   events,
		Logger:   logger,
		media:    &media{assets: assets, logger: logger, defaultCover: defaultCover, maxBytes: maxBytes},
	}
}

func (s *SongRequestService) Submit(ctx context.Context, actor *entity.User, in SongInput) (*entity.SongRequest, error) {
	if actor == nil {
		return nil, errs.ErrUnauthenticated
	}
	if err := in.validate(s.media.maxBytes); err != nil {
		return nil, err
	}
	stored, err := s.media.store(ctx, RequestsFolder, RequestsFolder, in)
	if err != nil {
		return nil, err
	}
	r := &entity.SongRequest{
		Title:         in.Title,
		Artist:        in.Artist,
		AudioURL:      stored.Audio.URL,
		ImageURL:      stored.ImageURL(s.media.defaultCover),
		AudioAssetID:  stored.Audio.AssetID,
		ImageAssetID:  stored.Image.AssetID,
		RequestedBy:   actor.ID,
		RequesterName: actor.Username,
		Status:        entity.RequestPending,
	}
	if err := s.Requests.Create(ctx, r); err != nil {
		s.media.discard(ctx, stored)
		return nil, fmt.Errorf("create song request: %w", err)
	}
	publish(ctx, s.Events, s.Logger, entity.NewEvent(entity.EventSongRequestCreated, map[string]any{
		"request_id":   r.ID,
		"title":        r.Title,
		"artist":       r.Artist,
		"requested_by": actor.Username,
	}))
	return r, nil
}

func (s *SongRequestService) ListPending(ctx context.Context, actor *entity.User) ([]entity.SongRequest, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	return s.Requests.ListPending(ctx)
}

// Accept turns a pending request into a catalog song credited to the requester.
func (s *SongRequestService) Accept(ctx context.Context, actor *entity.User, id string) (*entity.CatalogEntry, error) {
	r, err := s.pending(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	song := r.ToSong()
	if err := s.Requests.Accept(ctx, id, song); err != nil {
		return nil, err
	}
	songsUploaded.Add(1)
	if s.Index != nil {
		if err := s.Index.Index(ctx, song); err != nil {
			helpers.LogWarn(s.Logger, "index song failed", err, logrus.Fields{"song_id": song.ID})
		}
	}
	return &entity.CatalogEntry{Song: *song, Uploader: entity.NewUploader(r.RequestedBy, r.RequesterName)}, nil
}

// Decline marks a pending request declined, then removes its files.
func (s *SongRequestService) Decline(ctx context.Context, actor *entity.User, id string) error {
	r, err := s.pending(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.Requests.Decline(ctx, id); err != nil {
		return err
	}
	s.media.discard(ctx, storedMedia{
		Audio: entity.Asset{AssetID: r.AudioAssetID},
		Image: entity.Asset{AssetID: r.ImageAssetID},
	})
	return nil
}

func (s *SongRequestService) pending(ctx context.Context, actor *entity.User, id string) (*entity.SongRequest, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	id, err := canonicalID("song request", id)
	if err != nil {
		return nil, err
	}
	r, err := s.Requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != entity.RequestPending {
		return nil, fmt.Errorf("song request %s is %s: %w", id, r.Status, errs.ErrConflict)
	}
	return r, nil
}
