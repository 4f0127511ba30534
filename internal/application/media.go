package application

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
	"github.com/oksasatya/go-music-catalog/internal/domain/errs"
	repo "github.com/oksasatya/go-music-catalog/internal/domain/repository"
	"github.com/oksasatya/go-music-catalog/pkg/helpers"
)

// Asset host folders.
const (
	AudioFolder    = "music-player/audio"
	ImageFolder    = "music-player/images"
	RequestsFolder = "music-player/requests"
)

// Upload is one file of a multipart submission.
type Upload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// SongInput is a song submission: audio is required, image is optional.
type SongInput struct {
	Title  string
	Artist string
	Audio  *Upload
	Image  *Upload
}

func (in *SongInput) validate(maxBytes int64) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Artist = strings.TrimSpace(in.Artist)
	switch {
	case in.Title == "" || in.Artist == "":
		return fmt.Errorf("title and artist are required: %w", errs.ErrInvalid)
	case in.Audio == nil:
		return fmt.Errorf("audio file is required: %w", errs.ErrInvalid)
	}
	for _, u := range []*Upload{in.Audio, in.Image} {
		if u != nil && maxBytes > 0 && u.Size > maxBytes {
			return fmt.Errorf("%s exceeds %d bytes: %w", u.Filename, maxBytes, errs.ErrInvalid)
		}
	}
	return nil
}

// media pushes submission files to the asset host and cleans up after failures.
type media struct {
	assets       repo.AssetStore
	logger       *logrus.Logger
	defaultCover string
	maxBytes     int64
}

type storedMedia struct {
	Audio entity.Asset
	Image entity.Asset
}

// ImageURL falls back to the default cover when no image was uploaded.
func (m storedMedia) ImageURL(defaultCover string) string {
	if m.Image.URL != "" {
		return m.Image.URL
	}
	if defaultCover != "" {
		return defaultCover
	}
	return entity.DefaultCoverURL
}

// store uploads audio then image. If the image fails the audio is destroyed again.
func (m *media) store(ctx context.Context, audioFolder, imageFolder string, in SongInput) (storedMedia, error) {
	var out storedMedia
	audio, err := m.assets.Upload(ctx, in.Audio.Reader, in.Audio.ContentType, audioFolder, in.Audio.Filename)
	if err != nil {
		return out, err
	}
	out.Audio = audio
	if in.Image != nil {
		image, err := m.assets.Upload(ctx, in.Image.Reader, in.Image.ContentType, imageFolder, in.Image.Filename)
		if err != nil {
			m.discard(ctx, out)
			return storedMedia{}, err
		}
		out.Image = image
	}
	return out, nil
}

// discard destroys stored assets, logging failures.
func (m *media) discard(ctx context.Context, sm storedMedia) {
	for _, id := range []string{sm.Audio.AssetID, sm.Image.AssetID} {
		if id == "" {
			continue
		}
		if err := m.assets.Destroy(ctx, id); err != nil {
			helpers.LogWarn(m.logger, "asset cleanup failed", err, logrus.Fields{"asset_id": id})
		}
	}
}

// publish sends an event when a publisher is configured; failures are logged only.
func publish(ctx context.Context, events repo.EventPublisher, logger *logrus.Logger, ev entity.Event) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, ev); err != nil {
		helpers.LogWarn(logger, "publish event failed", err, logrus.Fields{"type": ev.Type})
	}
}
