package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/music-library/internal/domain"
)

// FavoriteMutation edits an aggregate in place. Returning an error aborts the write.
type FavoriteMutation func(fav *domain.Favorites) error

// FavoriteRepository persists per-account favorites aggregates.
type FavoriteRepository interface {
	// Get returns the account's aggregate or pgx.ErrNoRows.
	Get(ctx context.Context, accountID string) (*domain.Favorites, error)
	// Mutate runs fn against the account's aggregate with updates for the same
	// account serialized. With create=false a missing aggregate yields
	// pgx.ErrNoRows. The stored aggregate is left untouched when fn fails.
	Mutate(ctx context.Context, accountID string, create bool, fn FavoriteMutation) (*domain.Favorites, error)
}

type favoriteRepository struct {
	pool *pgxpool.Pool
}

// NewFavoriteRepository constructs repository.
func NewFavoriteRepository(pool *pgxpool.Pool) FavoriteRepository {
	return &favoriteRepository{pool: pool}
}

func (r *favoriteRepository) Get(ctx context.Context, accountID string) (*domain.Favorites, error) {
	const query = `
        SELECT id, account_id, created_at, updated_at
        FROM favorites WHERE account_id=$1`
	fav := domain.NewFavorites("", accountID)
	if err := r.pool.QueryRow(ctx, query, accountID).Scan(
		&fav.ID,
		&fav.AccountID,
		&fav.CreatedAt,
		&fav.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := loadFavoriteItems(ctx, r.pool, fav); err != nil {
		return nil, err
	}
	return fav, nil
}

func (r *favoriteRepository) Mutate(ctx context.Context, accountID string, create bool, fn FavoriteMutation) (*domain.Favorites, error) {
	var result *domain.Favorites
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if create {
			if _, err := tx.Exec(ctx, `
                INSERT INTO favorites (account_id) VALUES ($1)
                ON CONFLICT (account_id) DO NOTHING`, accountID); err != nil {
				return fmt.Errorf("ensure favorites: %w", err)
			}
		}

		fav := domain.NewFavorites("", accountID)
		if err := tx.QueryRow(ctx, `
            SELECT id, account_id, created_at, updated_at
            FROM favorites WHERE account_id=$1
            FOR UPDATE`, accountID).Scan(
			&fav.ID,
			&fav.AccountID,
			&fav.CreatedAt,
			&fav.UpdatedAt,
		); err != nil {
			return err
		}
		if err := loadFavoriteItems(ctx, tx, fav); err != nil {
			return err
		}

		before := fav.Clone()
		if err := fn(fav); err != nil {
			return err
		}

		for _, kind := range domain.ResourceKinds {
			for _, id := range difference(before.IDs(kind), fav.IDs(kind)) {
				if _, err := tx.Exec(ctx, `
                    DELETE FROM favorite_items
                    WHERE favorite_id=$1 AND kind=$2 AND item_id=$3`, fav.ID, kind, id); err != nil {
					return fmt.Errorf("delete favorite item: %w", err)
				}
			}
			for _, id := range difference(fav.IDs(kind), before.IDs(kind)) {
				if _, err := tx.Exec(ctx, `
                    INSERT INTO favorite_items (favorite_id, kind, item_id)
                    VALUES ($1,$2,$3)
                    ON CONFLICT DO NOTHING`, fav.ID, kind, id); err != nil {
					return fmt.Errorf("insert favorite item: %w", err)
				}
			}
		}

		if err := tx.QueryRow(ctx, `
            UPDATE favorites SET updated_at=NOW() WHERE id=$1
            RETURNING updated_at`, fav.ID).Scan(&fav.UpdatedAt); err != nil {
			return fmt.Errorf("touch favorites: %w", err)
		}
		result = fav
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func loadFavoriteItems(ctx context.Context, q querier, fav *domain.Favorites) error {
	const query = `
        SELECT kind, item_id FROM favorite_items
        WHERE favorite_id=$1
        ORDER BY added_at ASC, item_id ASC`
	rows, err := q.Query(ctx, query, fav.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			kind domain.ResourceKind
			id   string
		)
		if err := rows.Scan(&kind, &id); err != nil {
			return err
		}
		fav.Add(kind, id)
	}
	return rows.Err()
}

// difference returns the elements of a that are absent from b.
func difference(a, b []string) []string {
	seen := make(map[string]struct{}, len(b))
	for _, id := range b {
		seen[id] = struct{}{}
	}
	var out []string
	for _, id := range a {
		if _, ok := seen[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
