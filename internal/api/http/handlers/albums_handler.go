package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/music-library/internal/api/dto"
	"github.com/spec-kit/music-library/internal/service"
)

// AlbumsHandler exposes album catalog endpoints.
type AlbumsHandler struct {
	catalog *service.CatalogService
}

// NewAlbumsHandler constructs handler.
func NewAlbumsHandler(catalog *service.CatalogService) *AlbumsHandler {
	return &AlbumsHandler{catalog: catalog}
}

// List handles GET /albums?artist_id=&hidden=&limit=&offset=.
func (h *AlbumsHandler) List(c *fiber.Ctx) error {
	limit, offset, err := parsePage(c)
	if err != nil {
		return err
	}
	hidden, err := optionalBool(c, "hidden")
	if err != nil {
		return err
	}

	albums, err := h.catalog.ListAlbums(c.UserContext(), service.AlbumFilter{
		ArtistID: optionalString(c, "artist_id"),
		Hidden:   hidden,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Albums retrieved successfully.", dto.NewAlbumResponses(albums))
}

func (h *AlbumsHandler) Get(c *fiber.Ctx) error {
	album, err := h.catalog.GetAlbum(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Album retrieved successfully.", dto.NewAlbumResponse(album))
}

func (h *AlbumsHandler) Create(c *fiber.Ctx) error {
	var req dto.AlbumRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	album, err := h.catalog.CreateAlbum(c.UserContext(), service.AlbumInput{
		PublicID: req.AlbumID,
		ArtistID: req.ArtistID,
		Name:     req.Name,
		Year:     req.Year,
		Hidden:   req.Hidden,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Album created successfully.", dto.NewAlbumResponse(album))
}

func (h *AlbumsHandler) Update(c *fiber.Ctx) error {
	var req dto.AlbumRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	album, err := h.catalog.UpdateAlbum(c.UserContext(), c.Params("id"), service.AlbumInput{
		ArtistID: req.ArtistID,
		Name:     req.Name,
		Year:     req.Year,
		Hidden:   req.Hidden,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Album updated successfully.", dto.NewAlbumResponse(album))
}

func (h *AlbumsHandler) Delete(c *fiber.Ctx) error {
	album, err := h.catalog.DeleteAlbum(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Album: "+album.Name+" deleted successfully.", nil)
}
