package dto

import (
	"time"

	"github.com/spec-kit/music-library/internal/domain"
)

// ArtistRequest is the payload for artist create and update. ArtistID is the
// caller-chosen public id and is ignored on update.
type ArtistRequest struct {
	ArtistID string  `json:"artist_id"`
	Name     *string `json:"name"`
	Grammy   *int    `json:"grammy"`
	Hidden   *bool   `json:"hidden"`
}

// AlbumRequest is the payload for album create and update.
type AlbumRequest struct {
	AlbumID  string  `json:"album_id"`
	ArtistID *string `json:"artist_id"`
	Name     *string `json:"name"`
	Year     *int    `json:"year"`
	Hidden   *bool   `json:"hidden"`
}

// TrackRequest is the payload for track create and update.
type TrackRequest struct {
	TrackID  string  `json:"track_id"`
	ArtistID *string `json:"artist_id"`
	AlbumID  *string `json:"album_id"`
	Name     *string `json:"name"`
	Duration *int    `json:"duration"`
	Hidden   *bool   `json:"hidden"`
}

// ArtistResponse exposes both identifier forms.
type ArtistResponse struct {
	ID        int64     `json:"id"`
	ArtistID  string    `json:"artist_id"`
	Name      string    `json:"name"`
	Grammy    int       `json:"grammy"`
	Hidden    bool      `json:"hidden"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AlbumResponse exposes both identifier forms.
type AlbumResponse struct {
	ID        int64     `json:"id"`
	AlbumID   string    `json:"album_id"`
	ArtistID  string    `json:"artist_id"`
	Name      string    `json:"name"`
	Year      int       `json:"year"`
	Hidden    bool      `json:"hidden"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TrackResponse exposes both identifier forms.
type TrackResponse struct {
	ID        int64     `json:"id"`
	TrackID   string    `json:"track_id"`
	ArtistID  string    `json:"artist_id"`
	AlbumID   string    `json:"album_id"`
	Name      string    `json:"name"`
	Duration  int       `json:"duration"`
	Hidden    bool      `json:"hidden"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewArtistResponse(a *domain.Artist) ArtistResponse {
	return ArtistResponse{
		ID:        a.ID,
		ArtistID:  a.PublicID,
		Name:      a.Name,
		Grammy:    a.Grammy,
		Hidden:    a.Hidden,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func NewAlbumResponse(a *domain.Album) AlbumResponse {
	return AlbumResponse{
		ID:        a.ID,
		AlbumID:   a.PublicID,
		ArtistID:  a.ArtistID,
		Name:      a.Name,
		Year:      a.Year,
		Hidden:    a.Hidden,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func NewTrackResponse(t *domain.Track) TrackResponse {
	return TrackResponse{
		ID:        t.ID,
		TrackID:   t.PublicID,
		ArtistID:  t.ArtistID,
		AlbumID:   t.AlbumID,
		Name:      t.Name,
		Duration:  t.Duration,
		Hidden:    t.Hidden,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func NewArtistResponses(artists []domain.Artist) []ArtistResponse {
	out := make([]ArtistResponse, 0, len(artists))
	for i := range artists {
		out = append(out, NewArtistResponse(&artists[i]))
	}
	return out
}

func NewAlbumResponses(albums []domain.Album) []AlbumResponse {
	out := make([]AlbumResponse, 0, len(albums))
	for i := range albums {
		out = append(out, NewAlbumResponse(&albums[i]))
	}
	return out
}

func NewTrackResponses(tracks []domain.Track) []TrackResponse {
	out := make([]TrackResponse, 0, len(tracks))
	for i := range tracks {
		out = append(out, NewTrackResponse(&tracks[i]))
	}
	return out
}
