package memory

import (
	"context"
	"time"

	"github.com/spec-kit/music-library/internal/domain"
	"github.com/spec-kit/music-library/internal/repository"
)

// ArtistStore is an in-memory repository.ArtistRepository.
type ArtistStore struct {
	table *table[domain.Artist]
}

var _ repository.ArtistRepository = (*ArtistStore)(nil)

// NewArtistStore returns an empty store.
func NewArtistStore() *ArtistStore {
	return &ArtistStore{table: newTable[domain.Artist](func(a *domain.Artist) (*int64, *string, *time.Time, *time.Time) {
		return &a.ID, &a.PublicID, &a.CreatedAt, &a.UpdatedAt
	})}
}

func (s *ArtistStore) Create(_ context.Context, artist *domain.Artist) error {
	return s.table.insert(artist)
}

func (s *ArtistStore) Update(_ context.Context, artist *domain.Artist) error {
	return s.table.update(artist)
}

func (s *ArtistStore) Delete(_ context.Context, key int64) error {
	return s.table.delete(key)
}

func (s *ArtistStore) GetByPublicID(_ context.Context, publicID string) (*domain.Artist, error) {
	return s.table.getByPublicID(publicID)
}

func (s *ArtistStore) GetByKey(_ context.Context, key int64) (*domain.Artist, error) {
	return s.table.getByKey(key)
}

func (s *ArtistStore) List(_ context.Context, filter repository.ArtistFilter) ([]domain.Artist, error) {
	return s.table.list(func(a *domain.Artist) bool {
		if filter.Grammy != nil && a.Grammy != *filter.Grammy {
			return false
		}
		return filter.Hidden == nil || a.Hidden == *filter.Hidden
	}, filter.Page), nil
}

// AlbumStore is an in-memory repository.AlbumRepository.
type AlbumStore struct {
	table *table[domain.Album]
}

var _ repository.AlbumRepository = (*AlbumStore)(nil)

// NewAlbumStore returns an empty store.
func NewAlbumStore() *AlbumStore {
	return &AlbumStore{table: newTable[domain.Album](func(a *domain.Album) (*int64, *string, *time.Time, *time.Time) {
		return &a.ID, &a.PublicID, &a.CreatedAt, &a.UpdatedAt
	})}
}

func (s *AlbumStore) Create(_ context.Context, album *domain.Album) error {
	return s.table.insert(album)
}

func (s *AlbumStore) Update(_ context.Context, album *domain.Album) error {
	return s.table.update(album)
}

func (s *AlbumStore) Delete(_ context.Context, key int64) error {
	return s.table.delete(key)
}

func (s *AlbumStore) GetByPublicID(_ context.Context, publicID string) (*domain.Album, error) {
	return s.table.getByPublicID(publicID)
}

func (s *AlbumStore) GetByKey(_ context.Context, key int64) (*domain.Album, error) {
	return s.table.getByKey(key)
}

func (s *AlbumStore) List(_ context.Context, filter repository.AlbumFilter) ([]domain.Album, error) {
	return s.table.list(func(a *domain.Album) bool {
		if filter.ArtistID != nil && a.ArtistID != *filter.ArtistID {
			return false
		}
		return filter.Hidden == nil || a.Hidden == *filter.Hidden
	}, filter.Page), nil
}

// TrackStore is an in-memory repository.TrackRepository.
type TrackStore struct {
	table *table[domain.Track]
}

var _ repository.TrackRepository = (*TrackStore)(nil)

// NewTrackStore returns an empty store.
func NewTrackStore() *TrackStore {
	return &TrackStore{table: newTable[domain.Track](func(t *domain.Track) (*int64, *string, *time.Time, *time.Time) {
		return &t.ID, &t.PublicID, &t.CreatedAt, &t.UpdatedAt
	})}
}

func (s *TrackStore) Create(_ context.Context, track *domain.Track) error {
	return s.table.insert(track)
}

func (s *TrackStore) Update(_ context.Context, track *domain.Track) error {
	return s.table.update(track)
}

func (s *TrackStore) Delete(_ context.Context, key int64) error {
	return s.table.delete(key)
}

func (s *TrackStore) GetByPublicID(_ context.Context, publicID string) (*domain.Track, error) {
	return s.table.getByPublicID(publicID)
}

func (s *TrackStore) GetByKey(_ context.Context, key int64) (*domain.Track, error) {
	return s.table.getByKey(key)
}

func (s *TrackStore) List(_ context.Context, filter repository.TrackFilter) ([]domain.Track, error) {
	return s.table.list(func(t *domain.Track) bool {
		if filter.ArtistID != nil && t.ArtistID != *filter.ArtistID {
			return false
		}
		if filter.AlbumID != nil && t.AlbumID != *filter.AlbumID {
			return false
		}
		return filter.Hidden == nil || t.Hidden == *filter.Hidden
	}, filter.Page), nil
}
