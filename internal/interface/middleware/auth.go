package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-music-catalog/internal/application"
	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
	"github.com/oksasatya/go-music-catalog/internal/domain/errs"
	"github.com/oksasatya/go-music-catalog/pkg/helpers"
	"github.com/oksasatya/go-music-catalog/pkg/response"
)

const (
	CtxIdentityKey  = "identity"
	CtxUserIDKey    = "userID"
	CtxSessionIDKey = "sessionID"
)

// CredentialVerifier resolves bearer credentials; *application.AuthService implements it.
type CredentialVerifier interface {
	Authenticate(ctx context.Context, header string) (*entity.Identity, error)
	VerifyToken(ctx context.Context, token string) (*entity.Identity, error)
}

// Auth resolves the Authorization header, or the access_token cookie when no header is sent,
// and stores the identity in the Gin context.
func Auth(v CredentialVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			id  *entity.Identity
			err error
		)
		if header := c.GetHeader("Authorization"); header != "" {
			id, err = v.Authenticate(c.Request.Context(), header)
		} else if token, cErr := c.Cookie(helpers.AccessTokenCookie); cErr == nil && token != "" {
			id, err = v.VerifyToken(c.Request.Context(), token)
		} else {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		if err != nil {
			status := errs.HTTPStatus(err)
			msg := "unauthorized"
			if status == http.StatusInternalServerError {
				msg = "internal error"
			}
			response.Error[any](c, status, msg, nil)
			return
		}

		c.Set(CtxIdentityKey, id)
		c.Set(CtxUserIDKey, id.User.ID)
		c.Set(CtxSessionIDKey, id.SessionID)
		c.Next()
	}
}

// AdminOnly must run after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := application.RequireAdmin(CurrentUser(c)); err != nil {
			response.Error[any](c, errs.HTTPStatus(err), "admin privilege required", nil)
			return
		}
		c.Next()
	}
}

func CurrentIdentity(c *gin.Context) *entity.Identity {
	if v, ok := c.Get(CtxIdentityKey); ok {
		if id, ok := v.(*entity.Identity); ok {
			return id
		}
	}
	return nil
}

// CurrentUser returns the authenticated user or nil.
func CurrentUser(c *gin.Context) *entity.User {
	if id := CurrentIdentity(c); id != nil {
		return id.User
	}
	return nil
}
