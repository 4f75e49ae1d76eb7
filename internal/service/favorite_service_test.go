package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/music-library/internal/domain"
	"github.com/spec-kit/music-library/internal/events"
	apperrors "github.com/spec-kit/music-library/pkg/util"
)

const testAccountID = "acc-1"

func TestFavoritesListWithoutAggregateIsEmpty(t *testing.T) {
	env := newTestEnv(t)

	view, err := env.favorite.List(context.Background(), testAccountID)
	require.NoError(t, err)
	assert.Empty(t, view.ID)
	assert.Empty(t, view.Artists)
	assert.Empty(t, view.Albums)
	assert.Empty(t, view.Tracks)
}

func TestFavoritesAddIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedCatalog(t, env)

	_, err := env.favorite.Add(ctx, testAccountID, "track", "trk-abc")
	require.NoError(t, err)
	fav, err := env.favorite.Add(ctx, testAccountID, "track", "trk-abc")
	require.NoError(t, err)
	assert.Equal(t, []string{"trk-abc"}, fav.Tracks)

	view, err := env.favorite.List(ctx, testAccountID)
	require.NoError(t, err)
	require.Len(t, view.Tracks, 1)
	assert.Equal(t, "Sinnerman", view.Tracks[0].Name)

	assert.Len(t, env.eventsOf(events.EventFavoriteAdded), 1)
}

func TestFavoritesAddStoresPublicIDForKeyInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, album, _ := seedCatalog(t, env)

	fav, err := env.favorite.Add(ctx, testAccountID, "album", strconv.FormatInt(album.ID, 10))
	require.NoError(t, err)
	assert.Equal(t, []string{"alb-1"}, fav.Albums)
}

func TestFavoritesAddValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedCatalog(t, env)

	_, err := env.favorite.Add(ctx, testAccountID, "playlist", "trk-abc")
	requireCode(t, err, apperrors.CodeValidation)

	_, err = env.favorite.Add(ctx, testAccountID, "track", " ")
	requireCode(t, err, apperrors.CodeValidation)

	_, err = env.favorite.Add(ctx, testAccountID, "track", "trk-missing")
	requireCode(t, err, apperrors.CodeNotFound)

	_, err = env.favorites.Get(ctx, testAccountID)
	assert.Error(t, err, "failed adds must not create the aggregate")
}

func TestFavoritesConcurrentAddsBothSurvive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedCatalog(t, env)
	_, err := env.catalog.CreateTrack(ctx, TrackInput{
		PublicID: "trk-def",
		ArtistID: ptr("art-1"),
		AlbumID:  ptr("alb-1"),
		Name:     ptr("Feeling Good"),
		Duration: ptr(177),
	})
	require.NoError(t, err)

	start := make(chan struct{})
	var wg sync.WaitGroup
	for _, id := range []string{"trk-abc", "trk-def"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			<-start
			_, err := env.favorite.Add(ctx, testAccountID, "track", id)
			assert.NoError(t, err)
		}(id)
	}
	close(start)
	wg.Wait()

	view, err := env.favorite.List(ctx, testAccountID)
	require.NoError(t, err)
	ids := make([]string, 0, len(view.Tracks))
	for _, track := range view.Tracks {
		ids = append(ids, track.PublicID)
	}
	assert.ElementsMatch(t, []string{"trk-abc", "trk-def"}, ids)
}

func TestFavoritesManyConcurrentAdds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedCatalog(t, env)

	const n = 30
	for i := 0; i < n; i++ {
		_, err := env.catalog.CreateArtist(ctx, ArtistInput{PublicID: fmt.Sprintf("art-c%d", i), Name: ptr("A")})
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := env.favorite.Add(ctx, testAccountID, "artist", fmt.Sprintf("art-c%d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	view, err := env.favorite.List(ctx, testAccountID)
	require.NoError(t, err)
	assert.Len(t, view.Artists, n)
}

func TestFavoritesRemove(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedCatalog(t, env)

	requireCode(t, env.favorite.Remove(ctx, testAccountID, "trk-abc"), apperrors.CodeNotFound)

	_, err := env.favorite.Add(ctx, testAccountID, "artist", "art-1")
	require.NoError(t, err)
	_, err = env.favorite.Add(ctx, testAccountID, "track", "trk-abc")
	require.NoError(t, err)

	requireCode(t, env.favorite.Remove(ctx, testAccountID, "alb-1"), apperrors.CodeNotFound)

	require.NoError(t, env.favorite.Remove(ctx, testAccountID, "trk-abc"))

	fav, err := env.favorites.Get(ctx, testAccountID)
	require.NoError(t, err)
	assert.Empty(t, fav.Tracks)
	assert.Equal(t, []string{"art-1"}, fav.Artists)

	removed := env.eventsOf(events.EventFavoriteRemoved)
	require.Len(t, removed, 1)
	payload, ok := removed[0].Payload.(events.FavoritePayload)
	require.True(t, ok)
	assert.Equal(t, domain.KindTrack, payload.Kind)
}

func TestFavoritesAreScopedPerAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedCatalog(t, env)

	_, err := env.favorite.Add(ctx, "acc-a", "track", "trk-abc")
	require.NoError(t, err)

	requireCode(t, env.favorite.Remove(ctx, "acc-b", "trk-abc"), apperrors.CodeNotFound)

	view, err := env.favorite.List(ctx, "acc-b")
	require.NoError(t, err)
	assert.Empty(t, view.Tracks)
}

func TestFavoritesListSkipsDeletedRecords(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedCatalog(t, env)

	_, err := env.favorite.Add(ctx, testAccountID, "track", "trk-abc")
	require.NoError(t, err)
	_, err = env.favorite.Add(ctx, testAccountID, "album", "alb-1")
	require.NoError(t, err)
	_, err = env.catalog.DeleteTrack(ctx, "trk-abc")
	require.NoError(t, err)

	view, err := env.favorite.List(ctx, testAccountID)
	require.NoError(t, err)
	assert.NotEmpty(t, view.ID)
	assert.Empty(t, view.Tracks)
	assert.Len(t, view.Albums, 1)
}
