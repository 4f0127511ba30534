package handlers

import (
	"time"

	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
)

// userDTO never carries the password hash.
type userDTO struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	IsAdmin    bool      `json:"isAdmin"`
	LikedSongs []string  `json:"likedSongs"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toUserDTO(u *entity.User) userDTO {
	liked := u.LikedSongs
	if liked == nil {
		liked = []string{}
	}
	return userDTO{ID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin, LikedSongs: liked, CreatedAt: u.CreatedAt}
}

type uploaderDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type songDTO struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Artist     string      `json:"artist"`
	AudioURL   string      `json:"audioUrl"`
	ImageURL   string      `json:"imageUrl"`
	UploadedBy uploaderDTO `json:"uploadedBy"`
	Likes      int         `json:"likes"`
	CreatedAt  time.Time   `json:"createdAt"`
	IsLiked    bool        `json:"isLiked"`
}

func toSongDTO(e entity.CatalogEntry) songDTO {
	return songDTO{
		ID:         e.Song.ID,
		Title:      e.Song.Title,
		Artist:     e.Song.Artist,
		AudioURL:   e.Song.AudioURL,
		ImageURL:   e.Song.ImageURL,
		UploadedBy: uploaderDTO{ID: e.Uploader.ID, Username: e.Uploader.Username},
		Likes:      e.Song.Likes,
		CreatedAt:  e.Song.CreatedAt,
		IsLiked:    e.IsLiked,
	}
}

func toSongDTOs(entries []entity.CatalogEntry) []songDTO {
	out := make([]songDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toSongDTO(e))
	}
	return out
}

type likeDTO struct {
	Likes   int  `json:"likes"`
	IsLiked bool `json:"isLiked"`
}

type songRequestDTO struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Artist      string      `json:"artist"`
	AudioURL    string      `json:"audioUrl"`
	ImageURL    string      `json:"imageUrl"`
	RequestedBy uploaderDTO `json:"requestedBy"`
	Status      string      `json:"status"`
	SongID      string      `json:"songId,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func toSongRequestDTO(r *entity.SongRequest) songRequestDTO {
	by := entity.NewUploader(r.RequestedBy, r.RequesterName)
	return songRequestDTO{
		ID:          r.ID,
		Title:       r.Title,
		Artist:      r.Artist,
		AudioURL:    r.AudioURL,
		ImageURL:    r.ImageURL,
		RequestedBy: uploaderDTO{ID: by.ID, Username: by.Username},
		Status:      string(r.Status),
		SongID:      r.SongID,
		CreatedAt:   r.CreatedAt,
	}
}
