package memory

import (
	"context"
	"fmt"

	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
	"github.com/oksasatya/go-music-catalog/internal/domain/errs"
	"github.com/oksasatya/go-music-catalog/internal/domain/repository"
)

type SongRequestRepository struct{ s *Store }

func (r *SongRequestRepository) Create(_ context.Context, req *entity.SongRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req.ID = newID()
	req.Status = entity.RequestPending
	req.CreatedAt = r.s.now()
	req.UpdatedAt = req.CreatedAt
	cpy := *req
	r.s.requests[req.ID] = &cpy
	r.s.reqOrder = append(r.s.reqOrder, req.ID)
	return nil
}

// view copies a request and resolves its requester. Caller holds mu.
func (s *Store) view(req *entity.SongRequest) entity.SongRequest {
	cpy := *req
	cpy.RequesterName = entity.UnknownUploader
	if u, ok := s.users[req.RequestedBy]; ok {
		cpy.RequesterName = u.Username
	}
	return cpy
}

func (r *SongRequestRepository) GetByID(_ context.Context, id string) (*entity.SongRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.requests[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	v := r.s.view(req)
	return &v, nil
}

func (r *SongRequestRepository) ListPending(_ context.Context) ([]entity.SongRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.SongRequest, 0)
	for _, id := range r.s.reqOrder {
		if req := r.s.requests[id]; req.Status == entity.RequestPending {
			out = append(out, r.s.view(req))
		}
	}
	return out, nil
}

func (r *SongRequestRepository) Accept(_ context.Context, id string, song *entity.Song) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, err := r.s.pending(id)
	if err != nil {
		return err
	}
	r.s.insertSong(song)
	req.Status = entity.RequestAccepted
	req.SongID = song.ID
	req.UpdatedAt = r.s.now()
	return nil
}

func (r *SongRequestRepository) Decline(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, err := r.s.pending(id)
	if err != nil {
		return err
	}
	req.Status = entity.RequestDeclined
	req.UpdatedAt = r.s.now()
	return nil
}

// pending returns the stored request if it can still change state. Caller holds mu.
func (s *Store) pending(id string) (*entity.SongRequest, error) {
	req, ok := s.requests[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	if req.Status != entity.RequestPending {
		return nil, fmt.Errorf("request is %s: %w", req.Status, errs.ErrConflict)
	}
	return req, nil
}

var _ repository.SongRequestRepository = (*SongRequestRepository)(nil)
