// Package memory keeps the identity, catalog and request stores in process memory.
// It backs STORAGE_DRIVER=memory for local runs and the HTTP-level tests.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
)

// Store is shared by every repository view below. One mutex guards all of it,
// so a like transaction sees and mutates both stores atomically.
type Store struct {
	mu        sync.Mutex
	users     map[string]*entity.User
	usernames map[string]string
	likes     map[string]map[string]struct{}
	songs     map[string]*entity.Song
	songOrder []string
	requests  map[string]*entity.SongRequest
	reqOrder  []string
	now       func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:     map[string]*entity.User{},
		usernames: map[string]string{},
		likes:     map[string]map[string]struct{}{},
		songs:     map[string]*entity.Song{},
		requests:  map[string]*entity.SongRequest{},
		now:       time.Now,
	}
}

func (s *Store) Users() *UserRepository               { return &UserRepository{s: s} }
func (s *Store) Songs() *SongRepository               { return &SongRepository{s: s} }
func (s *Store) Likes() *LikeRepository               { return &LikeRepository{s: s} }
func (s *Store) SongRequests() *SongRequestRepository { return &SongRequestRepository{s: s} }

func newID() string { return uuid.NewString() }

// likedBy returns the sorted liked set of a user. Caller holds mu.
func (s *Store) likedBy(userID string) []string {
	out := make([]string, 0, len(s.likes[userID]))
	for id := range s.likes[userID] {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// entry resolves the uploader of a song. Caller holds mu.
func (s *Store) entry(song *entity.Song) entity.CatalogEntry {
	name := ""
	if u, ok := s.users[song.UploadedBy]; ok {
		name = u.Username
	}
	return entity.CatalogEntry{Song: *song, Uploader: entity.NewUploader(song.UploadedBy, name)}
}
