package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
	"github.com/oksasatya/go-music-catalog/internal/domain/errs"
)

func TestSubmit_StoresPendingAndPublishes(t *testing.T) {
	f := newFixture(t)
	bob := f.user(t, "bob", false)

	r, err := f.requests.Submit(context.Background(), bob, songInput("Naima", "Coltrane", true))
	require.NoError(t, err)
	require.Equal(t, entity.RequestPending, r.Status)
	require.Equal(t, RequestsFolder+"/Naima.mp3", r.AudioAssetID)
	require.Equal(t, RequestsFolder+"/Naima.png", r.ImageAssetID)

	require.Len(t, f.events.events, 1)
	ev := f.events.events[0]
	require.Equal(t, entity.EventSongRequestCreated, ev.Type)
	require.Equal(t, r.ID, ev.Data["request_id"])
	require.Equal(t, "bob", ev.Data["requested_by"])

	_, err = f.requests.Submit(context.Background(), nil, songInput("X", "Y", false))
	require.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestListPending_AdminOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.user(t, "admin", true)
	bob := f.user(t, "bob", false)
	_, err := f.requests.Submit(ctx, bob, songInput("Naima", "Coltrane", false))
	require.NoError(t, err)

	_, err = f.requests.ListPending(ctx, bob)
	require.ErrorIs(t, err, errs.ErrForbidden)

	list, err := f.requests.ListPending(ctx, admin)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "bob", list[0].RequesterName)
}

func TestAccept_CreatesSongCreditedToRequester(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.user(t, "admin", true)
	bob := f.user(t, "bob", false)
	r, err := f.requests.Submit(ctx, bob, songInput("Naima", "Coltrane", false))
	require.NoError(t, err)

	e, err := f.requests.Accept(ctx, admin, r.ID)
	require.NoError(t, err)
	require.Equal(t, bob.ID, e.Uploader.ID)
	require.Equal(t, "bob", e.Uploader.Username)
	require.Equal(t, entity.DefaultCoverURL, e.Song.ImageURL)
	require.Contains(t, f.index.docs, e.Song.ID)

	entries, err := f.catalog.List(ctx, admin, "naima")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	_, err = f.requests.Accept(ctx, admin, r.ID)
	require.ErrorIs(t, err, errs.ErrConflict)
	require.ErrorIs(t, f.requests.Decline(ctx, admin, r.ID), errs.ErrConflict)
}

func TestDecline_DiscardsAssets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.user(t, "admin", true)
	bob := f.user(t, "bob", false)
	r, err := f.requests.Submit(ctx, bob, songInput("Naima", "Coltrane", true))
	require.NoError(t, err)

	require.ErrorIs(t, f.requests.Decline(ctx, bob, r.ID), errs.ErrForbidden)
	require.NoError(t, f.requests.Decline(ctx, admin, r.ID))
	require.ElementsMatch(t, []string{r.AudioAssetID, r.ImageAssetID}, f.assets.destroyed)

	got, err := f.store.SongRequests().GetByID(ctx, r.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RequestDeclined, got.Status)

	require.ErrorIs(t, f.requests.Decline(ctx, admin, uuid.NewString()), errs.ErrNotFound)
	require.ErrorIs(t, f.requests.Decline(ctx, admin, "bad-id"), errs.ErrNotFound)
}
