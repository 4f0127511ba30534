package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-music-catalog/config"
	"github.com/oksasatya/go-music-catalog/internal/container"
	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
	"github.com/oksasatya/go-music-catalog/internal/infrastructure/memory"
	"github.com/oksasatya/go-music-catalog/internal/interface/middleware"
	"github.com/oksasatya/go-music-catalog/pkg/helpers"
	"github.com/oksasatya/go-music-catalog/pkg/validation"
)

type nopAssets struct{}

func (nopAssets) Upload(_ context.Context, r io.Reader, _, folder, filename string) (entity.Asset, error) {
	_, _ = io.Copy(io.Discard, r)
	return entity.Asset{URL: "https://cdn.test/" + folder + "/" + filename, AssetID: folder + "/" + filename}, nil
}

func (nopAssets) Destroy(context.Context, string) error { return nil }

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, resp *resty.Response, into any) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(resp.Body(), &env), resp.String())
	if into != nil {
		require.NoError(t, json.Unmarshal(env.Data, into))
	}
}

// newServer starts the full API on the in-memory store, with sessions and
// rate limits on miniredis.
func newServer(t *testing.T) (*resty.Client, *container.Container) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := &config.Config{
		AppName:             "go-music-catalog",
		Env:                 "test",
		JWTSecret:           "test-secret",
		JWTTTL:              time.Hour,
		BcryptCost:          4,
		UploadMaxBytes:      1 << 20,
		DebugMetricsEnabled: true,
	}
	c := container.New(cfg, logger, container.Deps{Memory: memory.NewStore(), Redis: rdb, Assets: nopAssets{}})

	engine := gin.New()
	engine.Use(middleware.RequestIDMiddleware(), middleware.RealIP())
	reg := NewRegistry(engine)
	InitModules(reg, c)
	reg.RegisterAll()

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	client := resty.New().SetBaseURL(srv.URL + "/api").SetCookieJar(nil)
	return client, c
}

func login(t *testing.T, client *resty.Client, path, username, password string) string {
	t.Helper()
	resp, err := client.R().
		SetBody(map[string]string{"username": username, "password": password}).
		Post(path)
	require.NoError(t, err)
	require.Less(t, resp.StatusCode(), 300, resp.String())
	var out struct {
		Token string `json:"token"`
	}
	decode(t, resp, &out)
	return out.Token
}

func TestAPI_EndToEnd(t *testing.T) {
	client, c := newServer(t)

	resp, err := client.R().Get("/health")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.NotEmpty(t, resp.Header().Get(middleware.RequestIDHeader))

	resp, err = client.R().Get("/songs")
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode())

	bob := login(t, client, "/register", "bob", "bobpw1")
	_, _, err = c.Auth.EnsureAdmin(context.Background(), "root", "rootpw")
	require.NoError(t, err)
	root := login(t, client, "/login", "root", "rootpw")

	upload := func(token string) *resty.Response {
		resp, err := client.R().
			SetAuthToken(token).
			SetFormData(map[string]string{"title": "Blue in Green", "artist": "Miles Davis"}).
			SetFileReader("audio", "blue.mp3", bytes.NewReader([]byte("ID3"))).
			Post("/songs")
		require.NoError(t, err)
		return resp
	}
	require.Equal(t, http.StatusForbidden, upload(bob).StatusCode())
	resp = upload(root)
	require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())
	var song struct {
		ID         string `json:"id"`
		ImageURL   string `json:"imageUrl"`
		UploadedBy struct {
			Username string `json:"username"`
		} `json:"uploadedBy"`
	}
	decode(t, resp, &song)
	require.Equal(t, "root", song.UploadedBy.Username)

	resp, err = client.R().SetAuthToken(bob).Post("/songs/" + song.ID + "/like")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.JSONEq(t, `{"likes":1,"isLiked":true}`, string(mustData(t, resp)))

	resp, err = client.R().SetAuthToken(bob).SetQueryParam("search", "miles").Get("/songs")
	require.NoError(t, err)
	var list []struct {
		ID      string `json:"id"`
		Likes   int    `json:"likes"`
		IsLiked bool   `json:"isLiked"`
	}
	decode(t, resp, &list)
	require.Len(t, list, 1)
	require.True(t, list[0].IsLiked)

	resp, err = client.R().SetAuthToken(root).Get("/songs")
	require.NoError(t, err)
	decode(t, resp, &list)
	require.False(t, list[0].IsLiked)
	require.Equal(t, 1, list[0].Likes)

	resp, err = client.R().SetAuthToken(bob).Delete("/songs/" + song.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode())

	resp, err = client.R().SetAuthToken(root).Delete("/songs/" + song.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	resp, err = client.R().SetAuthToken(bob).Get("/me")
	require.NoError(t, err)
	var me struct {
		LikedSongs []string `json:"likedSongs"`
	}
	decode(t, resp, &me)
	require.Empty(t, me.LikedSongs)
}

func TestAPI_LogoutRevokesToken(t *testing.T) {
	client, _ := newServer(t)
	token := login(t, client, "/register", "alice", "alicepw")

	resp, err := client.R().SetAuthToken(token).Get("/me")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	resp, err = client.R().SetAuthToken(token).Post("/logout")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	resp, err = client.R().SetAuthToken(token).Get("/me")
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode())
}

func TestAPI_RejectedTokenDoesNotToggleLike(t *testing.T) {
	client, c := newServer(t)
	bob := login(t, client, "/register", "bob", "bobpw1")
	_, _, err := c.Auth.EnsureAdmin(context.Background(), "root", "rootpw")
	require.NoError(t, err)
	root := login(t, client, "/login", "root", "rootpw")

	resp, err := client.R().
		SetAuthToken(root).
		SetFormData(map[string]string{"title": "Naima", "artist": "John Coltrane"}).
		SetFileReader("audio", "naima.mp3", bytes.NewReader([]byte("ID3"))).
		Post("/songs")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())
	var song struct {
		ID string `json:"id"`
	}
	decode(t, resp, &song)

	// same user and live session, but already past its expiry
	claims, err := helpers.NewJWTManager("test-secret", time.Hour).ParseAccessToken(bob)
	require.NoError(t, err)
	expired, _, err := helpers.NewJWTManager("test-secret", -time.Minute).GenerateAccessToken(claims.UserID, claims.SessionID)
	require.NoError(t, err)

	for name, token := range map[string]string{"expired": expired, "garbage": "not.a.jwt"} {
		resp, err := client.R().SetAuthToken(token).Post("/songs/" + song.ID + "/like")
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode(), name)
	}

	resp, err = client.R().SetAuthToken(root).Get("/songs")
	require.NoError(t, err)
	var list []struct {
		Likes int `json:"likes"`
	}
	decode(t, resp, &list)
	require.Len(t, list, 1)
	require.Equal(t, 0, list[0].Likes)

	resp, err = client.R().SetAuthToken(bob).Get("/me")
	require.NoError(t, err)
	var me struct {
		LikedSongs []string `json:"likedSongs"`
	}
	decode(t, resp, &me)
	require.Empty(t, me.LikedSongs)
}

func TestAPI_DuplicateRegistration(t *testing.T) {
	client, _ := newServer(t)
	login(t, client, "/register", "alice", "alicepw")

	resp, err := client.R().
		SetBody(map[string]string{"username": "alice", "password": "another"}).
		Post("/register")
	require.NoError(t, err)
	require.Equal(t, http.StatusConflict, resp.StatusCode())
}

func TestAPI_DebugVars(t *testing.T) {
	client, _ := newServer(t)
	resp, err := client.R().Get("/debug/vars")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.Contains(t, resp.String(), "likes_toggled")
}

func mustData(t *testing.T, resp *resty.Response) json.RawMessage {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(resp.Body(), &env))
	return env.Data
}
