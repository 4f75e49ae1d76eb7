package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/music-library/internal/api/dto"
	"github.com/spec-kit/music-library/internal/service"
)

// TracksHandler exposes track catalog endpoints.
type TracksHandler struct {
	catalog *service.CatalogService
}

// NewTracksHandler constructs handler.
func NewTracksHandler(catalog *service.CatalogService) *TracksHandler {
	return &TracksHandler{catalog: catalog}
}

// List handles GET /tracks?artist_id=&album_id=&hidden=&limit=&offset=.
func (h *TracksHandler) List(c *fiber.Ctx) error {
	limit, offset, err := parsePage(c)
	if err != nil {
		return err
	}
	hidden, err := optionalBool(c, "hidden")
	if err != nil {
		return err
	}

	tracks, err := h.catalog.ListTracks(c.UserContext(), service.TrackFilter{
		ArtistID: optionalString(c, "artist_id"),
		AlbumID:  optionalString(c, "album_id"),
		Hidden:   hidden,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Tracks retrieved successfully.", dto.NewTrackResponses(tracks))
}

func (h *TracksHandler) Get(c *fiber.Ctx) error {
	track, err := h.catalog.GetTrack(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Track retrieved successfully.", dto.NewTrackResponse(track))
}

func (h *TracksHandler) Create(c *fiber.Ctx) error {
	var req dto.TrackRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	track, err := h.catalog.CreateTrack(c.UserContext(), service.TrackInput{
		PublicID: req.TrackID,
		ArtistID: req.ArtistID,
		AlbumID:  req.AlbumID,
		Name:     req.Name,
		Duration: req.Duration,
		Hidden:   req.Hidden,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Track created successfully.", dto.NewTrackResponse(track))
}

func (h *TracksHandler) Update(c *fiber.Ctx) error {
	var req dto.TrackRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	track, err := h.catalog.UpdateTrack(c.UserContext(), c.Params("id"), service.TrackInput{
		ArtistID: req.ArtistID,
		AlbumID:  req.AlbumID,
		Name:     req.Name,
		Duration: req.Duration,
		Hidden:   req.Hidden,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Track updated successfully.", dto.NewTrackResponse(track))
}

func (h *TracksHandler) Delete(c *fiber.Ctx) error {
	track, err := h.catalog.DeleteTrack(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Track: "+track.Name+" deleted successfully.", nil)
}
