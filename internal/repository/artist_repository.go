package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/music-library/internal/domain"
)

// ArtistRepository manages artist persistence.
type ArtistRepository interface {
	Lookup[domain.Artist]
	Create(ctx context.Context, artist *domain.Artist) error
	Update(ctx context.Context, artist *domain.Artist) error
	Delete(ctx context.Context, key int64) error
	List(ctx context.Context, filter ArtistFilter) ([]domain.Artist, error)
}

// ArtistFilter captures artist listing filters.
type ArtistFilter struct {
	Grammy *int
	Hidden *bool
	Page
}

const artistColumns = `id, public_id, name, grammy, hidden, created_at, updated_at`

type artistRepository struct {
	pool *pgxpool.Pool
}

// NewArtistRepository builds the repository.
func NewArtistRepository(pool *pgxpool.Pool) ArtistRepository {
	return &artistRepository{pool: pool}
}

func (r *artistRepository) Create(ctx context.Context, artist *domain.Artist) error {
	const query = `
        INSERT INTO artists (public_id, name, grammy, hidden)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		artist.PublicID,
		artist.Name,
		artist.Grammy,
		artist.Hidden,
	).Scan(&artist.ID, &artist.CreatedAt, &artist.UpdatedAt)
	return mapWriteError(err)
}

func (r *artistRepository) Update(ctx context.Context, artist *domain.Artist) error {
	const query = `
        UPDATE artists SET name=$1, grammy=$2, hidden=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		artist.Name,
		artist.Grammy,
		artist.Hidden,
		artist.ID,
	).Scan(&artist.UpdatedAt)
}

func (r *artistRepository) Delete(ctx context.Context, key int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM artists WHERE id=$1`, key)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *artistRepository) GetByPublicID(ctx context.Context, publicID string) (*domain.Artist, error) {
	return r.fetchSingle(ctx, `SELECT `+artistColumns+` FROM artists WHERE public_id=$1`, publicID)
}

func (r *artistRepository) GetByKey(ctx context.Context, key int64) (*domain.Artist, error) {
	return r.fetchSingle(ctx, `SELECT `+artistColumns+` FROM artists WHERE id=$1`, key)
}

func (r *artistRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Artist, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	return pgx.CollectExactlyOneRow(rows, scanArtist)
}

func (r *artistRepository) List(ctx context.Context, filter ArtistFilter) ([]domain.Artist, error) {
	var where whereBuilder
	if filter.Grammy != nil {
		where.add("grammy", *filter.Grammy)
	}
	if filter.Hidden != nil {
		where.add("hidden", *filter.Hidden)
	}
	query, args := where.build(`SELECT `+artistColumns+` FROM artists`, "id ASC", filter.Page)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	artists, err := pgx.CollectRows(rows, scanArtist)
	if err != nil {
		return nil, err
	}
	return derefAll(artists), nil
}

func scanArtist(row pgx.CollectableRow) (*domain.Artist, error) {
	var artist domain.Artist
	if err := row.Scan(
		&artist.ID,
		&artist.PublicID,
		&artist.Name,
		&artist.Grammy,
		&artist.Hidden,
		&artist.CreatedAt,
		&artist.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &artist, nil
}

func derefAll[T any](items []*T) []T {
	result := make([]T, 0, len(items))
	for _, item := range items {
		result = append(result, *item)
	}
	return result
}
