package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
	"github.com/oksasatya/go-music-catalog/internal/domain/errs"
	"github.com/oksasatya/go-music-catalog/internal/infrastructure/memory"
	"github.com/oksasatya/go-music-catalog/pkg/helpers"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakeAssets struct {
	mu         sync.Mutex
	uploaded   []string
	destroyed  []string
	failFolder string
	destroyErr error
}

func (f *fakeAssets) Upload(_ context.Context, r io.Reader, _, folder, filename string) (entity.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if folder == f.failFolder {
		return entity.Asset{}, errors.Join(errors.New("asset host down"), errs.ErrUpstream)
	}
	if _, err := io.ReadAll(r); err != nil {
		return entity.Asset{}, err
	}
	id := folder + "/" + filename
	f.uploaded = append(f.uploaded, id)
	return entity.Asset{URL: "https://cdn.test/" + id, AssetID: id}, nil
}

func (f *fakeAssets) Destroy(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id == "" {
		return nil
	}
	if f.destroyErr != nil {
		return f.destroyErr
	}
	f.destroyed = append(f.destroyed, id)
	return nil
}

type fakeIndex struct {
	docs      map[string]string
	searchErr error
	extra     []string
}

func newFakeIndex() *fakeIndex { return &fakeIndex{docs: map[string]string{}} }

func (f *fakeIndex) Index(_ context.Context, s *entity.Song) error {
	f.docs[s.ID] = strings.ToLower(s.Title + " " + s.Artist)
	return nil
}

func (f *fakeIndex) Remove(_ context.Context, id string) error {
	delete(f.docs, id)
	return nil
}

func (f *fakeIndex) Search(_ context.Context, term string) ([]string, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	out := append([]string{}, f.extra...)
	for id, text := range f.docs {
		if strings.Contains(text, strings.ToLower(term)) {
			out = append(out, id)
		}
	}
	return out, nil
}

type fakeEvents struct {
	events []entity.Event
	err    error
}

func (f *fakeEvents) Publish(_ context.Context, ev entity.Event) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}

type fakeSessions struct {
	live      map[string]bool
	existsErr error
}

func newFakeSessions() *fakeSessions { return &fakeSessions{live: map[string]bool{}} }

func (f *fakeSessions) Save(_ context.Context, uid, sid string, _ time.Duration) error {
	f.live[uid+":"+sid] = true
	return nil
}

func (f *fakeSessions) Exists(_ context.Context, uid, sid string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.live[uid+":"+sid], nil
}

func (f *fakeSessions) Delete(_ context.Context, uid, sid string) error {
	delete(f.live, uid+":"+sid)
	return nil
}

// fixture wires every service over one memory store.
type fixture struct {
	store    *memory.Store
	assets   *fakeAssets
	index    *fakeIndex
	events   *fakeEvents
	sessions *fakeSessions
	auth     *AuthService
	catalog  *CatalogService
	likes    *LikeService
	songs    *SongService
	requests *SongRequestService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := quietLogger()
	f := &fixture{
		store:    memory.NewStore(),
		assets:   &fakeAssets{},
		index:    newFakeIndex(),
		events:   &fakeEvents{},
		sessions: newFakeSessions(),
	}
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	f.auth = NewAuthService(f.store.Users(), f.sessions, jwt, log, bcrypt.MinCost)
	f.catalog = NewCatalogService(f.store.Songs(), f.index, log)
	f.likes = NewLikeService(f.store.Likes(), log)
	f.songs = NewSongService(f.store.Songs(), f.assets, f.index, f.events, log, "", 1<<20)
	f.requests = NewSongRequestService(f.store.SongRequests(), f.assets, f.index, f.events, log, "", 1<<20)
	return f
}

func (f *fixture) user(t *testing.T, name string, admin bool) *entity.User {
	t.Helper()
	res, err := f.auth.Register(context.Background(), name, "secret1")
	require.NoError(t, err)
	if admin {
		require.NoError(t, f.store.Users().SetAdmin(context.Background(), res.User.ID, true))
	}
	return f.reload(t, res.User.ID)
}

func (f *fixture) reload(t *testing.T, id string) *entity.User {
	t.Helper()
	u, err := f.store.Users().GetByID(context.Background(), id)
	require.NoError(t, err)
	return u
}

func (f *fixture) song(t *testing.T, admin *entity.User, title, artist string) *entity.CatalogEntry {
	t.Helper()
	e, err := f.songs.Upload(context.Background(), admin, songInput(title, artist, false))
	require.NoError(t, err)
	return e
}

func songInput(title, artist string, withImage bool) SongInput {
	in := SongInput{
		Title:  title,
		Artist: artist,
		Audio:  &Upload{Reader: strings.NewReader("RIFF"), Filename: title + ".mp3", ContentType: "audio/mpeg", Size: 4},
	}
	if withImage {
		in.Image = &Upload{Reader: strings.NewReader("PNG"), Filename: title + ".png", ContentType: "image/png", Size: 3}
	}
	return in
}
