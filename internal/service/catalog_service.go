package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/music-library/internal/auth"
	"github.com/spec-kit/music-library/internal/domain"
	"github.com/spec-kit/music-library/internal/events"
	"github.com/spec-kit/music-library/internal/repository"
	apperrors "github.com/spec-kit/music-library/pkg/util"
)

// CatalogService manages artists, albums and tracks.
type CatalogService struct {
	artists    repository.ArtistRepository
	albums     repository.AlbumRepository
	tracks     repository.TrackRepository
	artistRes  *Resolver[domain.Artist]
	albumRes   *Resolver[domain.Album]
	trackRes   *Resolver[domain.Track]
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// CatalogDependencies bundles repositories for the catalog service.
type CatalogDependencies struct {
	ArtistRepo repository.ArtistRepository
	AlbumRepo  repository.AlbumRepository
	TrackRepo  repository.TrackRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// ArtistFilter describes artist listing filters.
type ArtistFilter struct {
	Grammy *int
	Hidden *bool
	Limit  int
	Offset int
}

// AlbumFilter describes album listing filters.
type AlbumFilter struct {
	ArtistID *string
	Hidden   *bool
	Limit    int
	Offset   int
}

// TrackFilter describes track listing filters.
type TrackFilter struct {
	ArtistID *string
	AlbumID  *string
	Hidden   *bool
	Limit    int
	Offset   int
}

// ArtistInput carries artist fields. On update nil fields are left untouched.
type ArtistInput struct {
	PublicID string
	Name     *string
	Grammy   *int
	Hidden   *bool
}

// AlbumInput carries album fields. ArtistID may be either identifier form.
type AlbumInput struct {
	PublicID string
	ArtistID *string
	Name     *string
	Year     *int
	Hidden   *bool
}

// TrackInput carries track fields. ArtistID and AlbumID may be either identifier form.
type TrackInput struct {
	PublicID string
	ArtistID *string
	AlbumID  *string
	Name     *string
	Duration *int
	Hidden   *bool
}

// NewCatalogService builds the service.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	return &CatalogService{
		artists:    deps.ArtistRepo,
		albums:     deps.AlbumRepo,
		tracks:     deps.TrackRepo,
		artistRes:  NewResolver[domain.Artist](domain.KindArtist, deps.ArtistRepo),
		albumRes:   NewResolver[domain.Album](domain.KindAlbum, deps.AlbumRepo),
		trackRes:   NewResolver[domain.Track](domain.KindTrack, deps.TrackRepo),
		dispatcher: deps.Dispatcher,
		logger:     loggerOrNop(deps.Logger),
	}
}

// ListArtists returns a page of artists. An empty page is not an error.
func (s *CatalogService) ListArtists(ctx context.Context, filter ArtistFilter) ([]domain.Artist, error) {
	artists, err := s.artists.List(ctx, repository.ArtistFilter{
		Grammy: filter.Grammy,
		Hidden: filter.Hidden,
		Page:   repository.Page{Limit: filter.Limit, Offset: filter.Offset},
	})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return artists, nil
}

// GetArtist resolves an artist by public id or key.
func (s *CatalogService) GetArtist(ctx context.Context, rawID string) (*domain.Artist, error) {
	return s.artistRes.Resolve(ctx, rawID)
}

// CreateArtist stores a new artist.
func (s *CatalogService) CreateArtist(ctx context.Context, input ArtistInput) (*domain.Artist, error) {
	name, err := requiredName(input.Name)
	if err != nil {
		return nil, err
	}
	artist := &domain.Artist{
		PublicID: publicIDOrNew(input.PublicID),
		Name:     name,
		Grammy:   derefOr(input.Grammy, 0),
		Hidden:   derefOr(input.Hidden, false),
	}
	if artist.Grammy < 0 {
		return nil, apperrors.NewValidationError("grammy must not be negative", nil)
	}
	if err := s.artists.Create(ctx, artist); err != nil {
		return nil, storeError(err, "artist")
	}
	s.catalogChanged(ctx, domain.KindArtist, artist.PublicID, events.CatalogCreated)
	return artist, nil
}

// UpdateArtist applies a partial update.
func (s *CatalogService) UpdateArtist(ctx context.Context, rawID string, patch ArtistInput) (*domain.Artist, error) {
	artist, err := s.artistRes.Resolve(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		if artist.Name, err = requiredName(patch.Name); err != nil {
			return nil, err
		}
	}
	if patch.Grammy != nil {
		if *patch.Grammy < 0 {
			return nil, apperrors.NewValidationError("grammy must not be negative", nil)
		}
		artist.Grammy = *patch.Grammy
	}
	if patch.Hidden != nil {
		artist.Hidden = *patch.Hidden
	}
	if err := s.artists.Update(ctx, artist); err != nil {
		return nil, storeError(err, "artist")
	}
	s.catalogChanged(ctx, domain.KindArtist, artist.PublicID, events.CatalogUpdated)
	return artist, nil
}

// DeleteArtist removes an artist.
func (s *CatalogService) DeleteArtist(ctx context.Context, rawID string) (*domain.Artist, error) {
	artist, err := s.artistRes.Resolve(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if err := s.artists.Delete(ctx, artist.ID); err != nil {
		return nil, storeError(err, "artist")
	}
	s.catalogChanged(ctx, domain.KindArtist, artist.PublicID, events.CatalogDeleted)
	return artist, nil
}

// ListAlbums returns a page of albums.
func (s *CatalogService) ListAlbums(ctx context.Context, filter AlbumFilter) ([]domain.Album, error) {
	albums, err := s.albums.List(ctx, repository.AlbumFilter{
		ArtistID: filter.ArtistID,
		Hidden:   filter.Hidden,
		Page:     repository.Page{Limit: filter.Limit, Offset: filter.Offset},
	})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return albums, nil
}

// GetAlbum resolves an album by public id or key.
func (s *CatalogService) GetAlbum(ctx context.Context, rawID string) (*domain.Album, error) {
	return s.albumRes.Resolve(ctx, rawID)
}

// CreateAlbum stores a new album owned by an existing artist.
func (s *CatalogService) CreateAlbum(ctx context.Context, input AlbumInput) (*domain.Album, error) {
	name, err := requiredName(input.Name)
	if err != nil {
		return nil, err
	}
	if input.Year == nil || *input.Year <= 0 {
		return nil, apperrors.NewValidationError("year is required", nil)
	}
	if input.ArtistID == nil {
		return nil, apperrors.NewValidationError("artist_id is required", nil)
	}
	artist, err := s.artistRes.Resolve(ctx, *input.ArtistID)
	if err != nil {
		return nil, err
	}

	album := &domain.Album{
		PublicID: publicIDOrNew(input.PublicID),
		ArtistID: artist.PublicID,
		Name:     name,
		Year:     *input.Year,
		Hidden:   derefOr(input.Hidden, false),
	}
	if err := s.albums.Create(ctx, album); err != nil {
		return nil, storeError(err, "album")
	}
	s.catalogChanged(ctx, domain.KindAlbum, album.PublicID, events.CatalogCreated)
	return album, nil
}

// UpdateAlbum applies a partial update. A new artist reference is re-resolved.
func (s *CatalogService) UpdateAlbum(ctx context.Context, rawID string, patch AlbumInput) (*domain.Album, error) {
	album, err := s.albumRes.Resolve(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		if album.Name, err = requiredName(patch.Name); err != nil {
			return nil, err
		}
	}
	if patch.Year != nil {
		if *patch.Year <= 0 {
			return nil, apperrors.NewValidationError("year must be positive", nil)
		}
		album.Year = *patch.Year
	}
	if patch.ArtistID != nil {
		artist, err := s.artistRes.Resolve(ctx, *patch.ArtistID)
		if err != nil {
			return nil, err
		}
		album.ArtistID = artist.PublicID
	}
	if patch.Hidden != nil {
		album.Hidden = *patch.Hidden
	}
	if err := s.albums.Update(ctx, album); err != nil {
		return nil, storeError(err, "album")
	}
	s.catalogChanged(ctx, domain.KindAlbum, album.PublicID, events.CatalogUpdated)
	return album, nil
}

// DeleteAlbum removes an album.
func (s *CatalogService) DeleteAlbum(ctx context.Context, rawID string) (*domain.Album, error) {
	album, err := s.albumRes.Resolve(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if err := s.albums.Delete(ctx, album.ID); err != nil {
		return nil, storeError(err, "album")
	}
	s.catalogChanged(ctx, domain.KindAlbum, album.PublicID, events.CatalogDeleted)
	return album, nil
}

// ListTracks returns a page of tracks.
func (s *CatalogService) ListTracks(ctx context.Context, filter TrackFilter) ([]domain.Track, error) {
	tracks, err := s.tracks.List(ctx, repository.TrackFilter{
		ArtistID: filter.ArtistID,
		AlbumID:  filter.AlbumID,
		Hidden:   filter.Hidden,
		Page:     repository.Page{Limit: filter.Limit, Offset: filter.Offset},
	})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return tracks, nil
}

// GetTrack resolves a track by public id or key.
func (s *CatalogService) GetTrack(ctx context.Context, rawID string) (*domain.Track, error) {
	return s.trackRes.Resolve(ctx, rawID)
}

// CreateTrack stores a new track referencing an existing artist and album.
func (s *CatalogService) CreateTrack(ctx context.Context, input TrackInput) (*domain.Track, error) {
	name, err := requiredName(input.Name)
	if err != nil {
		return nil, err
	}
	if input.Duration == nil || *input.Duration <= 0 {
		return nil, apperrors.NewValidationError("duration is required", nil)
	}
	if input.ArtistID == nil || input.AlbumID == nil {
		return nil, apperrors.NewValidationError("artist_id and album_id are required", nil)
	}
	artist, err := s.artistRes.Resolve(ctx, *input.ArtistID)
	if err != nil {
		return nil, err
	}
	album, err := s.albumRes.Resolve(ctx, *input.AlbumID)
	if err != nil {
		return nil, err
	}

	track := &domain.Track{
		PublicID: publicIDOrNew(input.PublicID),
		ArtistID: artist.PublicID,
		AlbumID:  album.PublicID,
		Name:     name,
		Duration: *input.Duration,
		Hidden:   derefOr(input.Hidden, false),
	}
	if err := s.tracks.Create(ctx, track); err != nil {
		return nil, storeError(err, "track")
	}
	s.catalogChanged(ctx, domain.KindTrack, track.PublicID, events.CatalogCreated)
	return track, nil
}

// UpdateTrack applies a partial update. New references are re-resolved.
func (s *CatalogService) UpdateTrack(ctx context.Context, rawID string, patch TrackInput) (*domain.Track, error) {
	track, err := s.trackRes.Resolve(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		if track.Name, err = requiredName(patch.Name); err != nil {
			return nil, err
		}
	}
	if patch.Duration != nil {
		if *patch.Duration <= 0 {
			return nil, apperrors.NewValidationError("duration must be positive", nil)
		}
		track.Duration = *patch.Duration
	}
	if patch.ArtistID != nil {
		artist, err := s.artistRes.Resolve(ctx, *patch.ArtistID)
		if err != nil {
			return nil, err
		}
		track.ArtistID = artist.PublicID
	}
	if patch.AlbumID != nil {
		album, err := s.albumRes.Resolve(ctx, *patch.AlbumID)
		if err != nil {
			return nil, err
		}
		track.AlbumID = album.PublicID
	}
	if patch.Hidden != nil {
		track.Hidden = *patch.Hidden
	}
	if err := s.tracks.Update(ctx, track); err != nil {
		return nil, storeError(err, "track")
	}
	s.catalogChanged(ctx, domain.KindTrack, track.PublicID, events.CatalogUpdated)
	return track, nil
}

// DeleteTrack removes a track.
func (s *CatalogService) DeleteTrack(ctx context.Context, rawID string) (*domain.Track, error) {
	track, err := s.trackRes.Resolve(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if err := s.tracks.Delete(ctx, track.ID); err != nil {
		return nil, storeError(err, "track")
	}
	s.catalogChanged(ctx, domain.KindTrack, track.PublicID, events.CatalogDeleted)
	return track, nil
}

func (s *CatalogService) catalogChanged(ctx context.Context, kind domain.ResourceKind, publicID string, action events.CatalogAction) {
	actor := ""
	if identity, ok := auth.IdentityFrom(ctx); ok {
		actor = identity.AccountID
	}
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventCatalogChanged, actor, events.CatalogChangedPayload{
		Kind:     kind,
		PublicID: publicID,
		Action:   action,
	}))
}

func requiredName(name *string) (string, error) {
	if name == nil || strings.TrimSpace(*name) == "" {
		return "", apperrors.NewValidationError("name is required", nil)
	}
	return strings.TrimSpace(*name), nil
}

func publicIDOrNew(publicID string) string {
	if trimmed := strings.TrimSpace(publicID); trimmed != "" {
		return trimmed
	}
	return uuid.NewString()
}

func derefOr[T any](value *T, fallback T) T {
	if value == nil {
		return fallback
	}
	return *value
}
