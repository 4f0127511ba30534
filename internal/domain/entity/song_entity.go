package entity

import (
	"strings"
	"time"
)

// DefaultCoverURL is used when a song is uploaded without a cover image.
const DefaultCoverURL = "https://images.unsplash.com/photo-1470225620780-dba8ba36b745?w=800&auto=format&fit=crop&q=60"

// UnknownUploader is shown when a song's uploader no longer exists.
const UnknownUploader = "unknown"

// Song is a catalog record. UploadedBy is a weak reference to a user id and may be empty.
// Likes must stay reconcilable with the number of users whose liked set holds ID.
type Song struct {
	ID              string
	Title           string
	Artist          string
	AudioURL        string
	ImageURL        string
	UploadedBy      string
	Likes           int
	ExternalAssetID string
	ImageAssetID    string
	CreatedAt       time.Time
}

// Matches reports whether term is a case-insensitive substring of the title or the artist.
func (s *Song) Matches(term string) bool {
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(s.Title), t) ||
		strings.Contains(strings.ToLower(s.Artist), t)
}

// Uploader is the only part of a user exposed next to a song.
type Uploader struct {
	ID       string
	Username string
}

// NewUploader resolves a possibly dangling uploader reference.
func NewUploader(id, username string) Uploader {
	if username == "" {
		return Uploader{ID: id, Username: UnknownUploader}
	}
	return Uploader{ID: id, Username: username}
}

// CatalogEntry is a song as seen by one particular user.
type CatalogEntry struct {
	Song     Song
	Uploader Uploader
	IsLiked  bool
}

// LikeState is the outcome of a like toggle for the acting user.
type LikeState struct {
	Likes   int
	IsLiked bool
}
