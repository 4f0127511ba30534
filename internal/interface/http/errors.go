package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-music-catalog/internal/domain/errs"
	"github.com/oksasatya/go-music-catalog/pkg/response"
)

// fail writes err with the status its sentinel maps to. Unmapped errors are
// logged and reported without detail.
func fail(c *gin.Context, logger *logrus.Logger, err error, message string) {
	status := errs.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"path":       c.FullPath(),
				"request_id": c.GetString("request_id"),
			}).Error(message)
		}
		response.Error[any](c, status, "internal error", nil)
		return
	}
	response.Error[any](c, status, message, err.Error())
}
