package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/music-library/internal/api/http/handlers"
	"github.com/spec-kit/music-library/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Artists        *handlers.ArtistsHandler
	Albums         *handlers.AlbumsHandler
	Tracks         *handlers.TracksHandler
	Favorites      *handlers.FavoritesHandler
	AuthMiddleware *auth.Middleware
}

// Route is one entry of the route table. A nil Policy marks a public route.
type Route struct {
	Method  string
	Path    string
	Policy  *auth.Policy
	Handler fiber.Handler
}

const apiPrefix = "/api/v1"

// Routes returns the full route table.
func Routes(cfg RouteConfig) []Route {
	authenticated := &auth.Authenticated
	writers := &auth.CatalogWriters
	admins := &auth.AdminsOnly

	return []Route{
		{fiber.MethodGet, "/health/live", nil, cfg.Health.Live},
		{fiber.MethodGet, "/health/ready", nil, cfg.Health.Ready},
		{fiber.MethodGet, "/health/metrics", admins, cfg.Health.Metrics},

		{fiber.MethodPost, apiPrefix + "/auth/signup", nil, cfg.Auth.Signup},
		{fiber.MethodPost, apiPrefix + "/auth/login", nil, cfg.Auth.Login},
		{fiber.MethodGet, apiPrefix + "/auth/logout", authenticated, cfg.Auth.Logout},
		{fiber.MethodPost, apiPrefix + "/auth/logout", authenticated, cfg.Auth.Logout},

		{fiber.MethodGet, apiPrefix + "/users", admins, cfg.Users.List},
		{fiber.MethodPost, apiPrefix + "/users/add-user", admins, cfg.Users.Create},
		{fiber.MethodPut, apiPrefix + "/users/update-password", authenticated, cfg.Users.UpdatePassword},
		{fiber.MethodPut, apiPrefix + "/users/:id/role", admins, cfg.Users.UpdateRole},
		{fiber.MethodDelete, apiPrefix + "/users/:id", admins, cfg.Users.Delete},

		{fiber.MethodGet, apiPrefix + "/artists", authenticated, cfg.Artists.List},
		{fiber.MethodPost, apiPrefix + "/artists/add-artist", writers, cfg.Artists.Create},
		{fiber.MethodGet, apiPrefix + "/artists/:id", authenticated, cfg.Artists.Get},
		{fiber.MethodPut, apiPrefix + "/artists/:id", writers, cfg.Artists.Update},
		{fiber.MethodDelete, apiPrefix + "/artists/:id", writers, cfg.Artists.Delete},

		{fiber.MethodGet, apiPrefix + "/albums", authenticated, cfg.Albums.List},
		{fiber.MethodPost, apiPrefix + "/albums/add-album", writers, cfg.Albums.Create},
		{fiber.MethodGet, apiPrefix + "/albums/:id", authenticated, cfg.Albums.Get},
		{fiber.MethodPut, apiPrefix + "/albums/:id", writers, cfg.Albums.Update},
		{fiber.MethodDelete, apiPrefix + "/albums/:id", writers, cfg.Albums.Delete},

		{fiber.MethodGet, apiPrefix + "/tracks", authenticated, cfg.Tracks.List},
		{fiber.MethodPost, apiPrefix + "/tracks/add-track", writers, cfg.Tracks.Create},
		{fiber.MethodGet, apiPrefix + "/tracks/:id", authenticated, cfg.Tracks.Get},
		{fiber.MethodPut, apiPrefix + "/tracks/:id", writers, cfg.Tracks.Update},
		{fiber.MethodDelete, apiPrefix + "/tracks/:id", writers, cfg.Tracks.Delete},

		{fiber.MethodGet, apiPrefix + "/favorites", authenticated, cfg.Favorites.List},
		{fiber.MethodPost, apiPrefix + "/favorites/add-favorite", authenticated, cfg.Favorites.Add},
		{fiber.MethodDelete, apiPrefix + "/favorites/remove-favorite/:favorite_id", authenticated, cfg.Favorites.Remove},
		{fiber.MethodGet, apiPrefix + "/favorites/:category", authenticated, cfg.Favorites.ListCategory},
	}
}

// RegisterRoutes wires HTTP routes from the route table.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	for _, route := range Routes(cfg) {
		if route.Policy == nil {
			app.Add(route.Method, route.Path, route.Handler)
			continue
		}
		app.Add(route.Method, route.Path, cfg.AuthMiddleware.Guard(*route.Policy), route.Handler)
	}
}
