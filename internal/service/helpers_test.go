package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/music-library/internal/auth"
	"github.com/spec-kit/music-library/internal/config"
	"github.com/spec-kit/music-library/internal/events"
	"github.com/spec-kit/music-library/internal/repository/memory"
	apperrors "github.com/spec-kit/music-library/pkg/util"
)

type testEnv struct {
	cfg         config.Config
	accounts    *memory.AccountStore
	artists     *memory.ArtistStore
	albums      *memory.AlbumStore
	tracks      *memory.TrackStore
	favorites   *memory.FavoriteStore
	revocations *auth.MemoryRevocationStore
	dispatcher  events.Dispatcher

	mu        sync.Mutex
	published []events.Event

	auth     *AuthService
	users    *UserService
	catalog  *CatalogService
	favorite *FavoriteService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		cfg: config.Config{Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			JWTIssuer:             "music-library-test",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            bcrypt.MinCost,
		}},
		accounts:    memory.NewAccountStore(),
		artists:     memory.NewArtistStore(),
		albums:      memory.NewAlbumStore(),
		tracks:      memory.NewTrackStore(),
		favorites:   memory.NewFavoriteStore(),
		revocations: auth.NewMemoryRevocationStore(time.Minute),
		dispatcher:  events.NewInMemoryDispatcher(),
	}
	t.Cleanup(env.revocations.Close)

	record := func(_ context.Context, e events.Event) error {
		env.mu.Lock()
		defer env.mu.Unlock()
		env.published = append(env.published, e)
		return nil
	}
	for _, eventType := range []events.EventType{
		events.EventAccountRegistered,
		events.EventAccountLoggedOut,
		events.EventFavoriteAdded,
		events.EventFavoriteRemoved,
		events.EventCatalogChanged,
	} {
		env.dispatcher.Subscribe(eventType, record)
	}

	env.auth = NewAuthService(env.cfg, AuthDependencies{
		AccountRepo: env.accounts,
		Revocations: env.revocations,
		Dispatcher:  env.dispatcher,
	})
	env.users = NewUserService(env.cfg, UserDependencies{
		AccountRepo: env.accounts,
		Dispatcher:  env.dispatcher,
	})
	env.catalog = NewCatalogService(CatalogDependencies{
		ArtistRepo: env.artists,
		AlbumRepo:  env.albums,
		TrackRepo:  env.tracks,
		Dispatcher: env.dispatcher,
	})
	env.favorite = NewFavoriteService(FavoriteDependencies{
		FavoriteRepo: env.favorites,
		ArtistRepo:   env.artists,
		AlbumRepo:    env.albums,
		TrackRepo:    env.tracks,
		Dispatcher:   env.dispatcher,
	})
	return env
}

func (env *testEnv) eventsOf(eventType events.EventType) []events.Event {
	env.mu.Lock()
	defer env.mu.Unlock()

	var out []events.Event
	for _, e := range env.published {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, apperrors.IsCode(err, code), "expected %s, got %v", code, err)
}

func ptr[T any](v T) *T {
	return &v
}
