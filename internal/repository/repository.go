package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate is returned when a unique column (email, public id) already holds the value.
var ErrDuplicate = errors.New("duplicate record")

const (
	defaultLimit = 5
	maxLimit     = 100
)

// Lookup exposes the two identifier forms a catalog record can be found by.
// Both return pgx.ErrNoRows when nothing matches.
type Lookup[T any] interface {
	GetByPublicID(ctx context.Context, publicID string) (*T, error)
	GetByKey(ctx context.Context, key int64) (*T, error)
}

// Page bounds a list query.
type Page struct {
	Limit  int
	Offset int
}

// Normalize clamps the page to sane bounds.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

// whereBuilder accumulates positional SQL predicates.
type whereBuilder struct {
	clauses []string
	args    []any
}

func (w *whereBuilder) add(column string, value any) {
	w.args = append(w.args, value)
	w.clauses = append(w.clauses, fmt.Sprintf("%s=$%d", column, len(w.args)))
}

func (w *whereBuilder) build(base, orderBy string, page Page) (string, []any) {
	page = page.Normalize()
	clauses := append([]string{"1=1"}, w.clauses...)
	query := fmt.Sprintf(`%s WHERE %s ORDER BY %s LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), orderBy, page.Limit, page.Offset)
	return query, w.args
}
