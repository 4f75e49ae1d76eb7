package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/music-library/internal/api/dto"
	"github.com/spec-kit/music-library/internal/domain"
	"github.com/spec-kit/music-library/internal/service"
	apperrors "github.com/spec-kit/music-library/pkg/util"
)

// FavoritesHandler exposes the caller's favorites.
type FavoritesHandler struct {
	favorites *service.FavoriteService
}

// NewFavoritesHandler constructs handler.
func NewFavoritesHandler(favorites *service.FavoriteService) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites}
}

// List handles GET /favorites.
func (h *FavoritesHandler) List(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	view, err := h.favorites.List(c.UserContext(), identity.AccountID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Favorites retrieved successfully.", dto.FavoritesResponse{
		FavoriteID: view.ID,
		Artists:    dto.NewArtistResponses(view.Artists),
		Albums:     dto.NewAlbumResponses(view.Albums),
		Tracks:     dto.NewTrackResponses(view.Tracks),
	})
}

// ListCategory handles GET /favorites/:category for artists, albums or tracks.
func (h *FavoritesHandler) ListCategory(c *fiber.Ctx) error {
	raw := c.Params("category")
	kind, ok := domain.ParseResourceKind(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(raw)), "s"))
	if !ok {
		return apperrors.NewValidationError("invalid category type; valid categories are artists, albums, tracks",
			map[string]any{"category": raw})
	}

	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	view, err := h.favorites.List(c.UserContext(), identity.AccountID)
	if err != nil {
		return err
	}

	var data any
	switch kind {
	case domain.KindArtist:
		data = dto.NewArtistResponses(view.Artists)
	case domain.KindAlbum:
		data = dto.NewAlbumResponses(view.Albums)
	default:
		data = dto.NewTrackResponses(view.Tracks)
	}
	return respond(c, http.StatusOK, "Favorite "+string(kind)+"s retrieved successfully.", data)
}

// Add handles POST /favorites/add-favorite.
func (h *FavoritesHandler) Add(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req dto.AddFavoriteRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if _, err := h.favorites.Add(c.UserContext(), identity.AccountID, req.Category, req.ItemID); err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Favorite added successfully.", nil)
}

// Remove handles DELETE /favorites/remove-favorite/:favorite_id.
func (h *FavoritesHandler) Remove(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	if err := h.favorites.Remove(c.UserContext(), identity.AccountID, c.Params("favorite_id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Favorite removed successfully.", nil)
}
