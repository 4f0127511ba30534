package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
	"github.com/oksasatya/go-music-catalog/internal/domain/errs"
	"github.com/oksasatya/go-music-catalog/internal/domain/repository"
)

type SongRequestRepository struct {
	db PgxPool
}

func NewSongRequestRepository(db PgxPool) *SongRequestRepository {
	return &SongRequestRepository{db: db}
}

const selectRequest = `
		SELECT r.id::text, r.title, r.artist, r.audio_url, r.image_url, r.audio_asset_id, r.image_asset_id,
		       COALESCE(r.requested_by::text, ''), COALESCE(u.username, ''), r.status, COALESCE(r.song_id::text, ''),
		       r.created_at, r.updated_at
		FROM song_requests r
		LEFT JOIN users u ON u.id = r.requested_by`

func scanRequest(row pgx.Row) (*entity.SongRequest, error) {
	var (
		req    entity.SongRequest
		status string
	)
	if err := row.Scan(&req.ID, &req.Title, &req.Artist, &req.AudioURL, &req.ImageURL, &req.AudioAssetID,
		&req.ImageAssetID, &req.RequestedBy, &req.RequesterName, &status, &req.SongID,
		&req.CreatedAt, &req.UpdatedAt); err != nil {
		return nil, err
	}
	req.Status = entity.SongRequestStatus(status)
	if req.RequesterName == "" {
		req.RequesterName = entity.UnknownUploader
	}
	return &req, nil
}

func (r *SongRequestRepository) Create(ctx context.Context, req *entity.SongRequest) error {
	req.Status = entity.RequestPending
	row := r.db.QueryRow(ctx, `
		INSERT INTO song_requests (title, artist, audio_url, image_url, audio_asset_id, image_asset_id, requested_by, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id::text, created_at, updated_at
	`, req.Title, req.Artist, req.AudioURL, req.ImageURL, req.AudioAssetID, req.ImageAssetID, nullable(req.RequestedBy), string(req.Status))
	return row.Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
}

func (r *SongRequestRepository) GetByID(ctx context.Context, id string) (*entity.SongRequest, error) {
	req, err := scanRequest(r.db.QueryRow(ctx, selectRequest+`
		WHERE r.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	return req, err
}

func (r *SongRequestRepository) ListPending(ctx context.Context) ([]entity.SongRequest, error) {
	rows, err := r.db.Query(ctx, selectRequest+`
		WHERE r.status = $1
		ORDER BY r.created_at, r.id`, string(entity.RequestPending))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.SongRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *req)
	}
	return out, rows.Err()
}

func (r *SongRequestRepository) Accept(ctx context.Context, id string, song *entity.Song) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := lockPending(ctx, tx, id); err != nil {
			return err
		}
		if err := insertSong(ctx, tx, song); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			UPDATE song_requests SET status = $2, song_id = $3, updated_at = now()
			WHERE id = $1
		`, id, string(entity.RequestAccepted), song.ID)
		return err
	})
}

func (r *SongRequestRepository) Decline(ctx context.Context, id string) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := lockPending(ctx, tx, id); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			UPDATE song_requests SET status = $2, updated_at = now()
			WHERE id = $1
		`, id, string(entity.RequestDeclined))
		return err
	})
}

func lockPending(ctx context.Context, tx pgx.Tx, id string) error {
	var status string
	err := tx.QueryRow(ctx, `SELECT status FROM song_requests WHERE id = $1 FOR UPDATE`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.ErrNotFound
	}
	if err != nil {
		return err
	}
	if entity.SongRequestStatus(status) != entity.RequestPending {
		return fmt.Errorf("request is %s: %w", status, errs.ErrConflict)
	}
	return nil
}

var _ repository.SongRequestRepository = (*SongRequestRepository)(nil)
