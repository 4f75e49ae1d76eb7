package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/music-library/internal/domain"
)

// TrackRepository manages track persistence.
type TrackRepository interface {
	Lookup[domain.Track]
	Create(ctx context.Context, track *domain.Track) error
	Update(ctx context.Context, track *domain.Track) error
	Delete(ctx context.Context, key int64) error
	List(ctx context.Context, filter TrackFilter) ([]domain.Track, error)
}

// TrackFilter captures track listing filters.
type TrackFilter struct {
	ArtistID *string
	AlbumID  *string
	Hidden   *bool
	Page
}

const trackColumns = `id, public_id, artist_id, album_id, name, duration, hidden, created_at, updated_at`

type trackRepository struct {
	pool *pgxpool.Pool
}

// NewTrackRepository builds the repository.
func NewTrackRepository(pool *pgxpool.Pool) TrackRepository {
	return &trackRepository{pool: pool}
}

func (r *trackRepository) Create(ctx context.Context, track *domain.Track) error {
	const query = `
        INSERT INTO tracks (public_id, artist_id, album_id, name, duration, hidden)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		track.PublicID,
		track.ArtistID,
		track.AlbumID,
		track.Name,
		track.Duration,
		track.Hidden,
	).Scan(&track.ID, &track.CreatedAt, &track.UpdatedAt)
	return mapWriteError(err)
}

func (r *trackRepository) Update(ctx context.Context, track *domain.Track) error {
	const query = `
        UPDATE tracks SET artist_id=$1, album_id=$2, name=$3, duration=$4, hidden=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		track.ArtistID,
		track.AlbumID,
		track.Name,
		track.Duration,
		track.Hidden,
		track.ID,
	).Scan(&track.UpdatedAt)
}

func (r *trackRepository) Delete(ctx context.Context, key int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tracks WHERE id=$1`, key)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *trackRepository) GetByPublicID(ctx context.Context, publicID string) (*domain.Track, error) {
	return r.fetchSingle(ctx, `SELECT `+trackColumns+` FROM tracks WHERE public_id=$1`, publicID)
}

func (r *trackRepository) GetByKey(ctx context.Context, key int64) (*domain.Track, error) {
	return r.fetchSingle(ctx, `SELECT `+trackColumns+` FROM tracks WHERE id=$1`, key)
}

func (r *trackRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Track, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	return pgx.CollectExactlyOneRow(rows, scanTrack)
}

func (r *trackRepository) List(ctx context.Context, filter TrackFilter) ([]domain.Track, error) {
	var where whereBuilder
	if filter.ArtistID != nil {
		where.add("artist_id", *filter.ArtistID)
	}
	if filter.AlbumID != nil {
		where.add("album_id", *filter.AlbumID)
	}
	if filter.Hidden != nil {
		where.add("hidden", *filter.Hidden)
	}
	query, args := where.build(`SELECT `+trackColumns+` FROM tracks`, "id ASC", filter.Page)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	tracks, err := pgx.CollectRows(rows, scanTrack)
	if err != nil {
		return nil, err
	}
	return derefAll(tracks), nil
}

func scanTrack(row pgx.CollectableRow) (*domain.Track, error) {
	var track domain.Track
	if err := row.Scan(
		&track.ID,
		&track.PublicID,
		&track.ArtistID,
		&track.AlbumID,
		&track.Name,
		&track.Duration,
		&track.Hidden,
		&track.CreatedAt,
		&track.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &track, nil
}
