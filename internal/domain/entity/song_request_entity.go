package entity

import "time"

type SongRequestStatus string

const (
	RequestPending  SongRequestStatus = "pending"
	RequestAccepted SongRequestStatus = "accepted"
	RequestDeclined SongRequestStatus = "declined"
)

// SongRequest is a candidate song submitted by a non-admin user for review.
type SongRequest struct {
	ID            string
	Title         string
	Artist        string
	AudioURL      string
	ImageURL      string
	AudioAssetID  string
	ImageAssetID  string
	RequestedBy   string
	RequesterName string
	Status        SongRequestStatus
	SongID        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ToSong builds the catalog record created when the request is accepted.
func (r *SongRequest) ToSong() *Song {
	img := r.ImageURL
	if img == "" {
		img = DefaultCoverURL
	}
	return &Song{
		Title:           r.Title,
		Artist:          r.Artist,
		AudioURL:        r.AudioURL,
		ImageURL:        img,
		UploadedBy:      r.RequestedBy,
		ExternalAssetID: r.AudioAssetID,
		ImageAssetID:    r.ImageAssetID,
	}
}
