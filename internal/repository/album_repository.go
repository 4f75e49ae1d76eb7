package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/music-library/internal/domain"
)

// AlbumRepository manages album persistence.
type AlbumRepository interface {
	Lookup[domain.Album]
	Create(ctx context.Context, album *domain.Album) error
	Update(ctx context.Context, album *domain.Album) error
	Delete(ctx context.Context, key int64) error
	List(ctx context.Context, filter AlbumFilter) ([]domain.Album, error)
}

// AlbumFilter captures album listing filters.
type AlbumFilter struct {
	ArtistID *string
	Hidden   *bool
	Page
}

const albumColumns = `id, public_id, artist_id, name, year, hidden, created_at, updated_at`

type albumRepository struct {
	pool *pgxpool.Pool
}

// NewAlbumRepository builds the repository.
func NewAlbumRepository(pool *pgxpool.Pool) AlbumRepository {
	return &albumRepository{pool: pool}
}

func (r *albumRepository) Create(ctx context.Context, album *domain.Album) error {
	const query = `
        INSERT INTO albums (public_id, artist_id, name, year, hidden)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		album.PublicID,
		album.ArtistID,
		album.Name,
		album.Year,
		album.Hidden,
	).Scan(&album.ID, &album.CreatedAt, &album.UpdatedAt)
	return mapWriteError(err)
}

func (r *albumRepository) Update(ctx context.Context, album *domain.Album) error {
	const query = `
        UPDATE albums SET artist_id=$1, name=$2, year=$3, hidden=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		album.ArtistID,
		album.Name,
		album.Year,
		album.Hidden,
		album.ID,
	).Scan(&album.UpdatedAt)
}

func (r *albumRepository) Delete(ctx context.Context, key int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM albums WHERE id=$1`, key)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *albumRepository) GetByPublicID(ctx context.Context, publicID string) (*domain.Album, error) {
	return r.fetchSingle(ctx, `SELECT `+albumColumns+` FROM albums WHERE public_id=$1`, publicID)
}

func (r *albumRepository) GetByKey(ctx context.Context, key int64) (*domain.Album, error) {
	return r.fetchSingle(ctx, `SELECT `+albumColumns+` FROM albums WHERE id=$1`, key)
}

func (r *albumRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Album, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	return pgx.CollectExactlyOneRow(rows, scanAlbum)
}

func (r *albumRepository) List(ctx context.Context, filter AlbumFilter) ([]domain.Album, error) {
	var where whereBuilder
	if filter.ArtistID != nil {
		where.add("artist_id", *filter.ArtistID)
	}
	if filter.Hidden != nil {
		where.add("hidden", *filter.Hidden)
	}
	query, args := where.build(`SELECT `+albumColumns+` FROM albums`, "id ASC", filter.Page)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	albums, err := pgx.CollectRows(rows, scanAlbum)
	if err != nil {
		return nil, err
	}
	return derefAll(albums), nil
}

func scanAlbum(row pgx.CollectableRow) (*domain.Album, error) {
	var album domain.Album
	if err := row.Scan(
		&album.ID,
		&album.PublicID,
		&album.ArtistID,
		&album.Name,
		&album.Year,
		&album.Hidden,
		&album.CreatedAt,
		&album.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &album, nil
}
