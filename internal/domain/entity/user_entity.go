package entity

import (
	"slices"
	"time"
)

// User is the aggregate root of the identity store.
// PasswordHash holds a bcrypt hash and never leaves the application layer.
// LikedSongs is a set of song ids; order carries no meaning.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	IsAdmin      bool
	LikedSongs   []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasLiked reports whether songID is a member of the user's liked set.
func (u *User) HasLiked(songID string) bool {
	if u == nil {
		return false
	}
	return slices.Contains(u.LikedSongs, songID)
}

// LikedSet returns the liked songs as a set for repeated membership tests.
func (u *User) LikedSet() map[string]struct{} {
	set := make(map[string]struct{}, len(u.LikedSongs))
	for _, id := range u.LikedSongs {
		set[id] = struct{}{}
	}
	return set
}

// Identity is the result of verifying a bearer credential.
type Identity struct {
	User      *User
	SessionID string
}
