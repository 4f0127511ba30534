package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-music-catalog/internal/application"
	"github.com/oksasatya/go-music-catalog/internal/interface/middleware"
	"github.com/oksasatya/go-music-catalog/pkg/response"
)

type SongHandler struct {
	Catalog        *application.CatalogService
	Likes          *application.LikeService
	Songs          *application.SongService
	Logger         *logrus.Logger
	MaxUploadBytes int64
}

func NewSongHandler(catalog *application.CatalogService, likes *application.LikeService, songs *application.SongService, logger *logrus.Logger, maxUploadBytes int64) *SongHandler {
	return &SongHandler{Catalog: catalog, Likes: likes, Songs: songs, Logger: logger, MaxUploadBytes: maxUploadBytes}
}

// List GET /api/songs?search=
func (h *SongHandler) List(c *gin.Context) {
	entries, err := h.Catalog.List(c.Request.Context(), middleware.CurrentUser(c), c.Query("search"))
	if err != nil {
		fail(c, h.Logger, err, "failed to list songs")
		return
	}
	response.Success(c, http.StatusOK, toSongDTOs(entries), "songs", map[string]any{"count": len(entries)})
}

// Upload POST /api/songs (admin, multipart)
func (h *SongHandler) Upload(c *gin.Context) {
	in, release, err := readSongForm(c, h.MaxUploadBytes)
	if err != nil {
		fail(c, h.Logger, err, "invalid upload")
		return
	}
	defer release()

	entry, err := h.Songs.Upload(c.Request.Context(), middleware.CurrentUser(c), in)
	if err != nil {
		fail(c, h.Logger, err, "upload failed")
		return
	}
	response.Success(c, http.StatusCreated, toSongDTO(*entry), "song uploaded", nil)
}

// Delete DELETE /api/songs/:id (admin)
func (h *SongHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Songs.Delete(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		fail(c, h.Logger, err, "delete failed")
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"id": id, "deleted": true}, "song deleted", nil)
}

// ToggleLike POST /api/songs/:id/like
func (h *SongHandler) ToggleLike(c *gin.Context) {
	state, err := h.Likes.Toggle(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err, "toggle like failed")
		return
	}
	response.Success(c, http.StatusOK, likeDTO{Likes: state.Likes, IsLiked: state.IsLiked}, "like toggled", nil)
}
