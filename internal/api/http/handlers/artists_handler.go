package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/music-library/internal/api/dto"
	"github.com/spec-kit/music-library/internal/service"
)

// ArtistsHandler exposes artist catalog endpoints.
type ArtistsHandler struct {
	catalog *service.CatalogService
}

// NewArtistsHandler constructs handler.
func NewArtistsHandler(catalog *service.CatalogService) *ArtistsHandler {
	return &ArtistsHandler{catalog: catalog}
}

// List handles GET /artists?grammy=&hidden=&limit=&offset=.
func (h *ArtistsHandler) List(c *fiber.Ctx) error {
	limit, offset, err := parsePage(c)
	if err != nil {
		return err
	}
	grammy, err := optionalInt(c, "grammy")
	if err != nil {
		return err
	}
	hidden, err := optionalBool(c, "hidden")
	if err != nil {
		return err
	}

	artists, err := h.catalog.ListArtists(c.UserContext(), service.ArtistFilter{
		Grammy: grammy,
		Hidden: hidden,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Artists retrieved successfully.", dto.NewArtistResponses(artists))
}

// Get handles GET /artists/:id.
func (h *ArtistsHandler) Get(c *fiber.Ctx) error {
	artist, err := h.catalog.GetArtist(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Artist retrieved successfully.", dto.NewArtistResponse(artist))
}

// Create handles POST /artists/add-artist.
func (h *ArtistsHandler) Create(c *fiber.Ctx) error {
	var req dto.ArtistRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	artist, err := h.catalog.CreateArtist(c.UserContext(), service.ArtistInput{
		PublicID: req.ArtistID,
		Name:     req.Name,
		Grammy:   req.Grammy,
		Hidden:   req.Hidden,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Artist created successfully.", dto.NewArtistResponse(artist))
}

// Update handles PUT /artists/:id.
func (h *ArtistsHandler) Update(c *fiber.Ctx) error {
	var req dto.ArtistRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	artist, err := h.catalog.UpdateArtist(c.UserContext(), c.Params("id"), service.ArtistInput{
		Name:   req.Name,
		Grammy: req.Grammy,
		Hidden: req.Hidden,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Artist updated successfully.", dto.NewArtistResponse(artist))
}

// Delete handles DELETE /artists/:id.
func (h *ArtistsHandler) Delete(c *fiber.Ctx) error {
	artist, err := h.catalog.DeleteArtist(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Artist: "+artist.Name+" deleted successfully.", nil)
}
