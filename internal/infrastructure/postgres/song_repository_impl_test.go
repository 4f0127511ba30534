package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
	"github.com/oksasatya/go-music-catalog/internal/domain/errs"
)

var catalogCols = []string{"id", "title", "artist", "audio_url", "image_url", "uploaded_by",
	"likes", "external_asset_id", "image_asset_id", "created_at", "username"}

func TestSongRepo_Create(t *testing.T) {
	db, mock := newDB(t)
	r := NewSongRepository(db)
	now := time.Now()

	s := &entity.Song{Title: "Song", Artist: "Band", AudioURL: "a.mp3", ImageURL: "c.jpg", ExternalAssetID: "audio/1"}
	mock.ExpectQuery(`INSERT INTO songs`).
		WithArgs("Song", "Band", "a.mp3", "c.jpg", nil, "audio/1", "").
		WillReturnRows(pgxmock.NewRows([]string{"id", "likes", "created_at"}).AddRow("s-1", 0, now))
	require.NoError(t, r.Create(context.Background(), s))
	require.Equal(t, "s-1", s.ID)
	require.Equal(t, now, s.CreatedAt)
}

func TestSongRepo_List_AllInInsertionOrder(t *testing.T) {
	db, mock := newDB(t)
	r := NewSongRepository(db)
	now := time.Now()

	mock.ExpectQuery(`FROM songs s\s+LEFT JOIN users u ON u.id = s.uploaded_by\s+ORDER BY s.created_at, s.id`).
		WillReturnRows(pgxmock.NewRows(catalogCols).
			AddRow("s-1", "One", "A", "1.mp3", "1.jpg", "u-1", 2, "", "", now, "alice").
			AddRow("s-2", "Two", "B", "2.mp3", "2.jpg", "", 0, "", "", now.Add(time.Second), ""))

	entries, err := r.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "s-1", entries[0].Song.ID)
	require.Equal(t, "alice", entries[0].Uploader.Username)
	require.Equal(t, entity.UnknownUploader, entries[1].Uploader.Username)
}

func TestSongRepo_List_SearchUsesEscapedILike(t *testing.T) {
	db, mock := newDB(t)
	r := NewSongRepository(db)

	mock.ExpectQuery(`WHERE s.title ILIKE \$1 ESCAPE '\\' OR s.artist ILIKE \$1 ESCAPE '\\'`).
		WithArgs(`%50\%%`).
		WillReturnRows(pgxmock.NewRows(catalogCols))

	entries, err := r.List(context.Background(), "50%")
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)
}

func TestSongRepo_ListByIDs(t *testing.T) {
	db, mock := newDB(t)
	r := NewSongRepository(db)
	ctx := context.Background()

	entries, err := r.ListByIDs(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, entries)

	ids := []string{"s-2", "s-1"}
	mock.ExpectQuery(`WHERE s.id = ANY\(\$1::uuid\[\]\)`).
		WithArgs(ids).
		WillReturnRows(pgxmock.NewRows(catalogCols).
			AddRow("s-1", "One", "A", "1.mp3", "1.jpg", "u-1", 0, "", "", time.Now(), "alice"))
	entries, err = r.ListByIDs(ctx, ids)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestSongRepo_GetByID(t *testing.T) {
	db, mock := newDB(t)
	r := NewSongRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`FROM songs\s+WHERE id = \$1`).
		WithArgs("s-1").
		WillReturnRows(pgxmock.NewRows(catalogCols[:10]).
			AddRow("s-1", "One", "A", "1.mp3", "1.jpg", "u-1", 3, "audio/1", "images/1", time.Now()))
	s, err := r.GetByID(ctx, "s-1")
	require.NoError(t, err)
	require.Equal(t, 3, s.Likes)
	require.Equal(t, "audio/1", s.ExternalAssetID)

	mock.ExpectQuery(`FROM songs\s+WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetByID(ctx, "missing")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestSongRepo_Delete(t *testing.T) {
	db, mock := newDB(t)
	r := NewSongRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM songs WHERE id = \$1`).
		WithArgs("s-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, r.Delete(ctx, "s-1"))

	mock.ExpectExec(`DELETE FROM songs WHERE id = \$1`).
		WithArgs("s-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.ErrorIs(t, r.Delete(ctx, "s-1"), errs.ErrNotFound)
}
