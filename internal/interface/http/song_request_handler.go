package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-music-catalog/internal/application"
	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
	"github.com/oksasatya/go-music-catalog/internal/interface/middleware"
	"github.com/oksasatya/go-music-catalog/pkg/response"
)

type SongRequestHandler struct {
	Svc            *application.SongRequestService
	Logger         *logrus.Logger
	MaxUploadBytes int64
}

func NewSongRequestHandler(svc *application.SongRequestService, logger *logrus.Logger, maxUploadBytes int64) *SongRequestHandler {
	return &SongRequestHandler{Svc: svc, Logger: logger, MaxUploadBytes: maxUploadBytes}
}

func (h *SongRequestHandler) Submit(c *gin.Context) {
	in, release, err := readSongForm(c, h.MaxUploadBytes)
	if err != nil {
		fail(c, h.Logger, err, "invalid song request")
		return
	}
	defer release()

	r, err := h.Svc.Submit(c.Request.Context(), middleware.CurrentUser(c), in)
	if err != nil {
		fail(c, h.Logger, err, "song request failed")
		return
	}
	response.Success(c, http.StatusCreated, toSongRequestDTO(r), "song request submitted", nil)
}

func (h *SongRequestHandler) ListPending(c *gin.Context) {
	reqs, err := h.Svc.ListPending(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		fail(c, h.Logger, err, "failed to list song requests")
		return
	}
	out := make([]songRequestDTO, 0, len(reqs))
	for i := range reqs {
		out = append(out, toSongRequestDTO(&reqs[i]))
	}
	response.Success(c, http.StatusOK, out, "pending song requests", map[string]any{"count": len(out)})
}

func (h *SongRequestHandler) Accept(c *gin.Context) {
	entry, err := h.Svc.Accept(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err, "accept failed")
		return
	}
	response.Success(c, http.StatusOK, toSongDTO(*entry), "song request accepted", nil)
}

func (h *SongRequestHandler) Decline(c *gin.Context) {
	id := c.Param("id")
	if err := h.Svc.Decline(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		fail(c, h.Logger, err, "decline failed")
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"id": id, "status": entity.RequestDeclined}, "song request declined", nil)
}
