package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/music-library/internal/api/http/handlers"
	"github.com/spec-kit/music-library/internal/auth"
	"github.com/spec-kit/music-library/internal/config"
	"github.com/spec-kit/music-library/internal/events"
	"github.com/spec-kit/music-library/internal/observability"
	"github.com/spec-kit/music-library/internal/persistence"
	"github.com/spec-kit/music-library/internal/repository/memory"
	"github.com/spec-kit/music-library/internal/service"
)

type envelope struct {
	Status  int             `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *struct {
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:             "test-secret",
		JWTIssuer:             "music-library-test",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            bcrypt.MinCost,
	}}
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	revocations := auth.NewMemoryRevocationStore(time.Minute)
	t.Cleanup(revocations.Close)

	accounts := memory.NewAccountStore()
	artists := memory.NewArtistStore()
	albums := memory.NewAlbumStore()
	tracks := memory.NewTrackStore()

	authService := service.NewAuthService(cfg, service.AuthDependencies{
		AccountRepo: accounts,
		Revocations: revocations,
		Dispatcher:  dispatcher,
	})
	userService := service.NewUserService(cfg, service.UserDependencies{AccountRepo: accounts, Dispatcher: dispatcher})
	catalogService := service.NewCatalogService(service.CatalogDependencies{
		ArtistRepo: artists,
		AlbumRepo:  albums,
		TrackRepo:  tracks,
		Dispatcher: dispatcher,
	})
	favoriteService := service.NewFavoriteService(service.FavoriteDependencies{
		FavoriteRepo: memory.NewFavoriteStore(),
		ArtistRepo:   artists,
		AlbumRepo:    albums,
		TrackRepo:    tracks,
		Dispatcher:   dispatcher,
	})

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterMiddlewares(app, logger, metrics, time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("music-library", "test", &persistence.Postgres{}, nil, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService, authService),
		Artists:        handlers.NewArtistsHandler(catalogService),
		Albums:         handlers.NewAlbumsHandler(catalogService),
		Tracks:         handlers.NewTracksHandler(catalogService),
		Favorites:      handlers.NewFavoritesHandler(favoriteService),
		AuthMiddleware: auth.NewMiddleware(authService),
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func signupAndLogin(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	creds := map[string]string{"email": email, "password": "secret"}

	status, _ := doRequest(t, app, http.MethodPost, "/api/v1/auth/signup", "", creds)
	require.Equal(t, http.StatusCreated, status)

	status, body := doRequest(t, app, http.MethodPost, "/api/v1/auth/login", "", creds)
	require.Equal(t, http.StatusOK, status)
	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &session))
	require.NotEmpty(t, session.Token)
	return session.Token
}

func TestSignupLoginLogoutFlow(t *testing.T) {
	app := newTestApp(t)

	status, body := doRequest(t, app, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"email": "admin@x.com", "password": "secret",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, http.StatusCreated, body.Status)
	assert.Nil(t, body.Error)
	var account struct {
		ID   string `json:"user_id"`
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &account))
	assert.NotEmpty(t, account.ID)
	assert.Equal(t, "Admin", account.Role)
	assert.NotContains(t, string(body.Data), "password")

	status, body = doRequest(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "admin@x.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, "UNAUTHORIZED", body.Error.Code)

	status, body = doRequest(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "admin@x.com", "password": "secret",
	})
	require.Equal(t, http.StatusOK, status)
	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &session))

	status, _ = doRequest(t, app, http.MethodGet, "/api/v1/users", session.Token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = doRequest(t, app, http.MethodGet, "/api/v1/auth/logout", session.Token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, body = doRequest(t, app, http.MethodGet, "/api/v1/users", session.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, "UNAUTHORIZED", body.Error.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	status, body := doRequest(t, app, http.MethodGet, "/api/v1/artists", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, "UNAUTHORIZED", body.Error.Code)

	status, _ = doRequest(t, app, http.MethodGet, "/api/v1/artists", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestViewerCannotWriteCatalog(t *testing.T) {
	app := newTestApp(t)
	adminToken := signupAndLogin(t, app, "admin@x.com")
	viewerToken := signupAndLogin(t, app, "viewer@x.com")

	artist := map[string]any{"artist_id": "art-1", "name": "Nina", "grammy": 2}

	status, body := doRequest(t, app, http.MethodPost, "/api/v1/artists/add-artist", viewerToken, artist)
	assert.Equal(t, http.StatusForbidden, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, "FORBIDDEN", body.Error.Code)

	status, _ = doRequest(t, app, http.MethodPost, "/api/v1/artists/add-artist", adminToken, artist)
	assert.Equal(t, http.StatusCreated, status)

	status, body = doRequest(t, app, http.MethodGet, "/api/v1/artists/art-1", viewerToken, nil)
	require.Equal(t, http.StatusOK, status)
	var got struct {
		ArtistID string `json:"artist_id"`
		Name     string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &got))
	assert.Equal(t, "art-1", got.ArtistID)
	assert.Equal(t, "Nina", got.Name)

	status, _ = doRequest(t, app, http.MethodGet, "/api/v1/users", viewerToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestCatalogAndFavoritesOverHTTP(t *testing.T) {
	app := newTestApp(t)
	token := signupAndLogin(t, app, "admin@x.com")

	status, _ := doRequest(t, app, http.MethodPost, "/api/v1/artists/add-artist", token, map[string]any{"artist_id": "art-1", "name": "Nina"})
	require.Equal(t, http.StatusCreated, status)
	status, _ = doRequest(t, app, http.MethodPost, "/api/v1/albums/add-album", token, map[string]any{
		"album_id": "alb-1", "artist_id": "art-1", "name": "Pastel Blues", "year": 1965,
	})
	require.Equal(t, http.StatusCreated, status)
	status, _ = doRequest(t, app, http.MethodPost, "/api/v1/tracks/add-track", token, map[string]any{
		"track_id": "trk-abc", "artist_id": "art-1", "album_id": "alb-1", "name": "Sinnerman", "duration": 622,
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := doRequest(t, app, http.MethodGet, "/api/v1/tracks?album_id=alb-1", token, nil)
	require.Equal(t, http.StatusOK, status)
	var tracks []map[string]any
	require.NoError(t, json.Unmarshal(body.Data, &tracks))
	assert.Len(t, tracks, 1)

	status, body = doRequest(t, app, http.MethodGet, "/api/v1/artists?hidden=maybe", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)

	status, _ = doRequest(t, app, http.MethodPost, "/api/v1/favorites/add-favorite", token, map[string]any{"category": "track", "item_id": "trk-abc"})
	require.Equal(t, http.StatusCreated, status)

	status, body = doRequest(t, app, http.MethodGet, "/api/v1/favorites", token, nil)
	require.Equal(t, http.StatusOK, status)
	var favorites struct {
		FavoriteID string           `json:"favorite_id"`
		Artists    []map[string]any `json:"artists"`
		Tracks     []map[string]any `json:"tracks"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &favorites))
	assert.NotEmpty(t, favorites.FavoriteID)
	assert.NotNil(t, favorites.Artists)
	assert.Empty(t, favorites.Artists)
	require.Len(t, favorites.Tracks, 1)
	assert.Equal(t, "trk-abc", favorites.Tracks[0]["track_id"])

	status, body = doRequest(t, app, http.MethodGet, "/api/v1/favorites/tracks", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body.Data, &tracks))
	assert.Len(t, tracks, 1)

	status, _ = doRequest(t, app, http.MethodGet, "/api/v1/favorites/playlists", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doRequest(t, app, http.MethodDelete, "/api/v1/favorites/remove-favorite/trk-abc", token, nil)
	assert.Equal(t, http.StatusOK, status)
	status, body = doRequest(t, app, http.MethodDelete, "/api/v1/favorites/remove-favorite/trk-abc", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)

	status, _ = doRequest(t, app, http.MethodDelete, "/api/v1/tracks/trk-abc", token, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = doRequest(t, app, http.MethodGet, "/api/v1/tracks/trk-abc", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	app := newTestApp(t)

	status, body := doRequest(t, app, http.MethodGet, "/api/v1/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, http.StatusNotFound, body.Status)
	require.NotNil(t, body.Error)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
}

func TestMalformedBodyIsValidationError(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthInMemoryMode(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status       string            `json:"status"`
		Dependencies map[string]string `json:"dependencies"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ready", body.Status)
	assert.Equal(t, "memory", body.Dependencies["postgres"])
	assert.Equal(t, "disabled", body.Dependencies["redis"])
}

func TestRouteTableGuardsEveryAPIRoute(t *testing.T) {
	public := map[string]bool{
		"/api/v1/auth/signup": true,
		"/api/v1/auth/login":  true,
	}
	for _, route := range Routes(RouteConfig{
		Health:    &handlers.HealthHandler{},
		Auth:      &handlers.AuthHandler{},
		Users:     &handlers.UsersHandler{},
		Artists:   &handlers.ArtistsHandler{},
		Albums:    &handlers.AlbumsHandler{},
		Tracks:    &handlers.TracksHandler{},
		Favorites: &handlers.FavoritesHandler{},
	}) {
		if len(route.Path) < len(apiPrefix) || route.Path[:len(apiPrefix)] != apiPrefix {
			continue
		}
		if public[route.Path] {
			assert.Nil(t, route.Policy, route.Path)
			continue
		}
		assert.NotNil(t, route.Policy, route.Method+" "+route.Path)
	}
}
