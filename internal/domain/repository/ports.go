package repository

import (
	"context"
	"io"
	"time"

	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
)

// AssetStore is the external asset host.
type AssetStore interface {
	Upload(ctx context.Context, r io.Reader, contentType, folder, filename string) (entity.Asset, error)
	// Destroy must treat an already-absent asset as success.
	Destroy(ctx context.Context, assetID string) error
}

// SongIndex is a secondary search index over the catalog.
type SongIndex interface {
	Index(ctx context.Context, s *entity.Song) error
	Remove(ctx context.Context, id string) error
	// Search returns ids of songs whose title or artist contains term, case-insensitively.
	Search(ctx context.Context, term string) ([]string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, ev entity.Event) error
}

// SessionStore tracks live sessions so that logout can revoke a token before it expires.
type SessionStore interface {
	Save(ctx context.Context, userID, sessionID string, ttl time.Duration) error
	Exists(ctx context.Context, userID, sessionID string) (bool, error)
	Delete(ctx context.Context, userID, sessionID string) error
}
