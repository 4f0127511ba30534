package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
	repo "github.com/oksasatya/go-music-catalog/internal/domain/repository"
)

type LikeService struct {
	Likes  repo.LikeRepository
	Logger *logrus.Logger
}

func NewLikeService(likes repo.LikeRepository, logger *logrus.Logger) *LikeService {
	return &LikeService{Likes: likes, Logger: logger}
}

// Toggle flips the user's like on a song and returns the new counter and membership.
// Membership and counter change in one transaction with the song held, so
// concurrent toggles serialize.
func (s *LikeService) Toggle(ctx context.Context, userID, songID string) (entity.LikeState, error) {
	songID, err := canonicalID("song", songID)
	if err != nil {
		return entity.LikeState{}, err
	}

	var state entity.LikeState
	err = s.Likes.WithinTx(ctx, func(tx repo.LikeTx) error {
		likes, err := tx.LockSong(ctx, songID)
		if err != nil {
			return err
		}
		liked, err := tx.IsLiked(ctx, userID, songID)
		if err != nil {
			return err
		}
		if liked {
			if err := tx.RemoveLike(ctx, userID, songID); err != nil {
				return err
			}
			likes = max(0, likes-1)
		} else {
			if err := tx.AddLike(ctx, userID, songID); err != nil {
				return err
			}
			likes++
		}
		if err := tx.SetLikes(ctx, songID, likes); err != nil {
			return err
		}
		state = entity.LikeState{Likes: likes, IsLiked: !liked}
		return nil
	})
	if err != nil {
		return entity.LikeState{}, err
	}

	likesToggled.Add(1)
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": userID, "song_id": songID, "liked": state.IsLiked}).Debug("like toggled")
	}
	return state, nil
}
