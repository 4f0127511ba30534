package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
	"github.com/oksasatya/go-music-catalog/internal/domain/errs"
	"github.com/oksasatya/go-music-catalog/internal/domain/repository"
)

type SongRepository struct {
	db PgxPool
}

func NewSongRepository(db PgxPool) *SongRepository {
	return &SongRepository{db: db}
}

const selectCatalog = `
		SELECT s.id::text, s.title, s.artist, s.audio_url, s.image_url, COALESCE(s.uploaded_by::text, ''),
		       s.likes, s.external_asset_id, s.image_asset_id, s.created_at, COALESCE(u.username, '')
		FROM songs s
		LEFT JOIN users u ON u.id = s.uploaded_by`

const orderCatalog = `
		ORDER BY s.created_at, s.id`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns a raw search term into an ILIKE substring pattern.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func (r *SongRepository) Create(ctx context.Context, s *entity.Song) error {
	return insertSong(ctx, r.db, s)
}

func insertSong(ctx context.Context, q querier, s *entity.Song) error {
	row := q.QueryRow(ctx, `
		INSERT INTO songs (title, artist, audio_url, image_url, uploaded_by, external_asset_id, image_asset_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id::text, likes, created_at
	`, s.Title, s.Artist, s.AudioURL, s.ImageURL, nullable(s.UploadedBy), s.ExternalAssetID, s.ImageAssetID)
	return row.Scan(&s.ID, &s.Likes, &s.CreatedAt)
}

func (r *SongRepository) GetByID(ctx context.Context, id string) (*entity.Song, error) {
	s := &entity.Song{}
	err := r.db.QueryRow(ctx, `
		SELECT id::text, title, artist, audio_url, image_url, COALESCE(uploaded_by::text, ''),
		       likes, external_asset_id, image_asset_id, created_at
		FROM songs
		WHERE id = $1
	`, id).Scan(&s.ID, &s.Title, &s.Artist, &s.AudioURL, &s.ImageURL, &s.UploadedBy,
		&s.Likes, &s.ExternalAssetID, &s.ImageAssetID, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *SongRepository) List(ctx context.Context, search string) ([]entity.CatalogEntry, error) {
	if search == "" {
		return r.queryCatalog(ctx, selectCatalog+orderCatalog)
	}
	return r.queryCatalog(ctx, selectCatalog+`
		WHERE s.title ILIKE $1 ESCAPE '\' OR s.artist ILIKE $1 ESCAPE '\'`+orderCatalog, containsPattern(search))
}

func (r *SongRepository) ListByIDs(ctx context.Context, ids []string) ([]entity.CatalogEntry, error) {
	if len(ids) == 0 {
		return []entity.CatalogEntry{}, nil
	}
	return r.queryCatalog(ctx, selectCatalog+`
		WHERE s.id = ANY($1::uuid[])`+orderCatalog, ids)
}

func (r *SongRepository) queryCatalog(ctx context.Context, q string, args ...any) ([]entity.CatalogEntry, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.CatalogEntry, 0)
	for rows.Next() {
		var (
			s        entity.Song
			username string
		)
		if err := rows.Scan(&s.ID, &s.Title, &s.Artist, &s.AudioURL, &s.ImageURL, &s.UploadedBy,
			&s.Likes, &s.ExternalAssetID, &s.ImageAssetID, &s.CreatedAt, &username); err != nil {
			return nil, err
		}
		out = append(out, entity.CatalogEntry{Song: s, Uploader: entity.NewUploader(s.UploadedBy, username)})
	}
	return out, rows.Err()
}

// Delete removes the song; like memberships go with it through ON DELETE CASCADE.
func (r *SongRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM songs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

var _ repository.SongRepository = (*SongRepository)(nil)
