package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/music-library/internal/domain"
	"github.com/spec-kit/music-library/internal/events"
	"github.com/spec-kit/music-library/internal/repository"
	apperrors "github.com/spec-kit/music-library/pkg/util"
)

// FavoriteService manages each account's favorites aggregate. Every mutation
// goes through FavoriteRepository.Mutate so updates for one account never
// overwrite each other.
type FavoriteService struct {
	favorites  repository.FavoriteRepository
	artists    *Resolver[domain.Artist]
	albums     *Resolver[domain.Album]
	tracks     *Resolver[domain.Track]
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// FavoriteDependencies bundles collaborators for the favorites service.
type FavoriteDependencies struct {
	FavoriteRepo repository.FavoriteRepository
	ArtistRepo   repository.ArtistRepository
	AlbumRepo    repository.AlbumRepository
	TrackRepo    repository.TrackRepository
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// FavoritesView is an aggregate with every id expanded into its record.
type FavoritesView struct {
	ID      string
	Artists []domain.Artist
	Albums  []domain.Album
	Tracks  []domain.Track
}

// NewFavoriteService builds the service.
func NewFavoriteService(deps FavoriteDependencies) *FavoriteService {
	return &FavoriteService{
		favorites:  deps.FavoriteRepo,
		artists:    NewResolver[domain.Artist](domain.KindArtist, deps.ArtistRepo),
		albums:     NewResolver[domain.Album](domain.KindAlbum, deps.AlbumRepo),
		tracks:     NewResolver[domain.Track](domain.KindTrack, deps.TrackRepo),
		dispatcher: deps.Dispatcher,
		logger:     loggerOrNop(deps.Logger),
	}
}

// List expands the account's favorites. Records deleted since they were added
// are skipped. An account without an aggregate gets empty sets.
func (s *FavoriteService) List(ctx context.Context, accountID string) (*FavoritesView, error) {
	view := &FavoritesView{
		Artists: []domain.Artist{},
		Albums:  []domain.Album{},
		Tracks:  []domain.Track{},
	}

	fav, err := s.favorites.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return view, nil
		}
		return nil, apperrors.NewInternalError(err)
	}
	view.ID = fav.ID

	if view.Artists, err = expand(ctx, s.artists, fav.Artists); err != nil {
		return nil, err
	}
	if view.Albums, err = expand(ctx, s.albums, fav.Albums); err != nil {
		return nil, err
	}
	if view.Tracks, err = expand(ctx, s.tracks, fav.Tracks); err != nil {
		return nil, err
	}
	return view, nil
}

func expand[T any](ctx context.Context, resolver *Resolver[T], ids []string) ([]T, error) {
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		record, err := resolver.Resolve(ctx, id)
		if err != nil {
			if apperrors.IsCode(err, apperrors.CodeNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, *record)
	}
	return out, nil
}

// Add favorites the record identified by rawID. The record's public id is
// what gets stored, whichever identifier form was supplied. Adding an id
// that is already present succeeds without change.
func (s *FavoriteService) Add(ctx context.Context, accountID, kindName, rawID string) (*domain.Favorites, error) {
	kind, ok := domain.ParseResourceKind(kindName)
	if !ok {
		return nil, apperrors.NewValidationError("invalid category type; valid categories are artist, album, track",
			map[string]any{"category": kindName})
	}
	if strings.TrimSpace(rawID) == "" {
		return nil, apperrors.NewValidationError("item_id is required", nil)
	}

	publicID, err := s.resolvePublicID(ctx, kind, rawID)
	if err != nil {
		return nil, err
	}

	added := false
	fav, err := s.favorites.Mutate(ctx, accountID, true, func(fav *domain.Favorites) error {
		added = fav.Add(kind, publicID)
		return nil
	})
	if err != nil {
		return nil, storeError(err, "favorites")
	}

	if added {
		publish(ctx, s.dispatcher, s.logger, events.New(events.EventFavoriteAdded, accountID, events.FavoritePayload{
			FavoriteID: fav.ID,
			Kind:       kind,
			ItemID:     publicID,
		}))
	}
	return fav, nil
}

// Remove deletes the first entry equal to id, searching artists, albums then tracks.
func (s *FavoriteService) Remove(ctx context.Context, accountID, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperrors.NewValidationError("favorite id is required", nil)
	}

	var removedKind domain.ResourceKind
	fav, err := s.favorites.Mutate(ctx, accountID, false, func(fav *domain.Favorites) error {
		kind, ok := fav.Remove(id)
		if !ok {
			return apperrors.NewNotFound("favorite", map[string]any{"id": id})
		}
		removedKind = kind
		return nil
	})
	if err != nil {
		return storeError(err, "favorites")
	}

	publish(ctx, s.dispatcher, s.logger, events.New(events.EventFavoriteRemoved, accountID, events.FavoritePayload{
		FavoriteID: fav.ID,
		Kind:       removedKind,
		ItemID:     id,
	}))
	return nil
}

func (s *FavoriteService) resolvePublicID(ctx context.Context, kind domain.ResourceKind, rawID string) (string, error) {
	switch kind {
	case domain.KindArtist:
		artist, err := s.artists.Resolve(ctx, rawID)
		if err != nil {
			return "", err
		}
		return artist.PublicID, nil
	case domain.KindAlbum:
		album, err := s.albums.Resolve(ctx, rawID)
		if err != nil {
			return "", err
		}
		return album.PublicID, nil
	default:
		track, err := s.tracks.Resolve(ctx, rawID)
		if err != nil {
			return "", err
		}
		return track.PublicID, nil
	}
}
