package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/music-library/internal/domain"
)

// AccountRepository defines persistence access for accounts.
type AccountRepository interface {
	// Register inserts the account, assigning bootstrapRole instead of
	// account.Role when no account exists yet. Decision and insert are atomic.
	Register(ctx context.Context, account *domain.Account, bootstrapRole domain.Role) error
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, filter AccountFilter) ([]domain.Account, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.Account, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}

// AccountFilter defines query params for account listing.
type AccountFilter struct {
	Role *domain.Role
	Page
}

// registerLockKey serializes bootstrap registrations across connections.
const registerLockKey = 727_001

const accountColumns = `id, email, password_hash, role, created_at, updated_at`

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

func (r *accountRepository) Register(ctx context.Context, account *domain.Account, bootstrapRole domain.Role) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, registerLockKey); err != nil {
			return fmt.Errorf("lock accounts: %w", err)
		}
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts)`).Scan(&exists); err != nil {
			return fmt.Errorf("count accounts: %w", err)
		}
		if !exists {
			account.Role = bootstrapRole
		}
		return insertAccount(ctx, tx, account)
	})
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	return insertAccount(ctx, r.pool, account)
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func insertAccount(ctx context.Context, q queryRower, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (email, password_hash, role)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	err := q.QueryRow(ctx, query,
		account.Email,
		account.PasswordHash,
		account.Role,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	return mapWriteError(err)
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.fetchSingle(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id=$1`, id)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.fetchSingle(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email=$1`, email)
}

func (r *accountRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var account domain.Account
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count)
	return count, err
}

func (r *accountRepository) List(ctx context.Context, filter AccountFilter) ([]domain.Account, error) {
	var where whereBuilder
	if filter.Role != nil {
		where.add("role", *filter.Role)
	}
	query, args := where.build(`SELECT `+accountColumns+` FROM accounts`, "created_at ASC", filter.Page)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Account{}
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.Email,
			&account.PasswordHash,
			&account.Role,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, account)
	}
	return result, rows.Err()
}

func (r *accountRepository) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.Account, error) {
	const query = `
        UPDATE accounts SET role=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING ` + accountColumns

	var account domain.Account
	if err := r.pool.QueryRow(ctx, query, role, id).Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE accounts SET password_hash=$1, updated_at=NOW() WHERE id=$2`, passwordHash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
