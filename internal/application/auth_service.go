package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
	"github.com/oksasatya/go-music-catalog/internal/domain/errs"
	repo "github.com/oksasatya/go-music-catalog/internal/domain/repository"
	"github.com/oksasatya/go-music-catalog/pkg/helpers"
)

// AuthService registers users, issues bearer credentials and resolves them back to users.
// Sessions is optional; without it a token stays valid until it expires.
type AuthService struct {
	Users      repo.UserRepository
	Sessions   repo.SessionStore
	JWT        *helpers.JWTManager
	Logger     *logrus.Logger
	BcryptCost int
}

func NewAuthService(users repo.UserRepository, sessions repo.SessionStore, jwt *helpers.JWTManager, logger *logrus.Logger, bcryptCost int) *AuthService {
	return &AuthService{Users: users, Sessions: sessions, JWT: jwt, Logger: logger, BcryptCost: bcryptCost}
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required: %w", errs.ErrInvalid)
	}
	hash, err := helpers.HashPassword(password, s.BcryptCost)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Username: username, PasswordHash: hash, LikedSongs: []string{}}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return s.issue(ctx, u)
}

// Login checks the password. An unknown username and a wrong password are indistinguishable.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	u, err := s.Users.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, errs.ErrNotFound) {
		return nil, fmt.Errorf("invalid credentials: %w", errs.ErrUnauthenticated)
	}
	if err != nil {
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, fmt.Errorf("invalid credentials: %w", errs.ErrUnauthenticated)
	}
	return s.issue(ctx, u)
}

func (s *AuthService) issue(ctx context.Context, u *entity.User) (*AuthResult, error) {
	sid := uuid.NewString()
	token, exp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		helpers.LogError(s.Logger, "generate access token failed", err, logrus.Fields{"user_id": u.ID})
		return nil, err
	}
	if s.Sessions != nil {
		if err := s.Sessions.Save(ctx, u.ID, sid, s.JWT.TTL); err != nil {
			helpers.LogError(s.Logger, "save session failed", err, logrus.Fields{"user_id": u.ID})
			return nil, err
		}
	}
	return &AuthResult{User: u, Token: token, ExpiresAt: exp}, nil
}

// Logout revokes the session behind the identity's token.
func (s *AuthService) Logout(ctx context.Context, id *entity.Identity) error {
	if s.Sessions == nil || id == nil || id.SessionID == "" {
		return nil
	}
	return s.Sessions.Delete(ctx, id.User.ID, id.SessionID)
}

// Authenticate resolves an Authorization header value.
func (s *AuthService) Authenticate(ctx context.Context, header string) (*entity.Identity, error) {
	token, err := helpers.BearerToken(header)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, errs.ErrUnauthenticated)
	}
	return s.VerifyToken(ctx, token)
}

// VerifyToken checks signature and expiry, then loads the subject.
// A session store that cannot be reached rejects the token.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*entity.Identity, error) {
	claims, err := s.JWT.ParseAccessToken(token)
	if err != nil {
		return nil, fmt.Errorf("verify token: %v: %w", err, errs.ErrUnauthenticated)
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, fmt.Errorf("token subject gone: %w", errs.ErrUnauthenticated)
	}
	if err != nil {
		return nil, err
	}
	if s.Sessions != nil {
		ok, err := s.Sessions.Exists(ctx, u.ID, claims.SessionID)
		if err != nil {
			helpers.LogWarn(s.Logger, "session lookup failed", err, logrus.Fields{"user_id": u.ID})
			return nil, fmt.Errorf("session lookup: %w", errs.ErrUnauthenticated)
		}
		if !ok {
			return nil, fmt.Errorf("session revoked: %w", errs.ErrUnauthenticated)
		}
	}
	return &entity.Identity{User: u, SessionID: claims.SessionID}, nil
}

// RequireAdmin rejects a resolved user without admin privilege.
func RequireAdmin(u *entity.User) error {
	if u == nil {
		return errs.ErrUnauthenticated
	}
	if !u.IsAdmin {
		return errs.ErrForbidden
	}
	return nil
}

// EnsureAdmin creates username as an admin, or promotes it when it already exists.
// The password of an existing user is left untouched.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (*entity.User, bool, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if errors.Is(err, errs.ErrNotFound) {
		if password == "" {
			return nil, false, fmt.Errorf("password is required for a new admin: %w", errs.ErrInvalid)
		}
		hash, err := helpers.HashPassword(password, s.BcryptCost)
		if err != nil {
			return nil, false, err
		}
		u = &entity.User{Username: username, PasswordHash: hash, IsAdmin: true, LikedSongs: []string{}}
		if err := s.Users.Create(ctx, u); err != nil {
			return nil, false, err
		}
		return u, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	if err := s.Users.SetAdmin(ctx, u.ID, true); err != nil {
		return nil, false, err
	}
	u.IsAdmin = true
	return u, false, nil
}

// SetAdmin grants or revokes admin privilege by username.
func (s *AuthService) SetAdmin(ctx context.Context, username string, isAdmin bool) (*entity.User, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := s.Users.SetAdmin(ctx, u.ID, isAdmin); err != nil {
		return nil, err
	}
	u.IsAdmin = isAdmin
	return u, nil
}

// DeleteUser removes a user by username.
func (s *AuthService) DeleteUser(ctx context.Context, username string) error {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.Users.Delete(ctx, u.ID)
}
