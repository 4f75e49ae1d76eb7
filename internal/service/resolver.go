package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/music-library/internal/domain"
	"github.com/spec-kit/music-library/internal/repository"
	apperrors "github.com/spec-kit/music-library/pkg/util"
)

// Resolver finds a catalog record by either of its identifiers. The public id
// always wins; the surrogate key is tried only when the public id misses and
// the raw value is shaped like a key.
type Resolver[T any] struct {
	kind   domain.ResourceKind
	lookup repository.Lookup[T]
}

// NewResolver builds a resolver for one resource kind.
func NewResolver[T any](kind domain.ResourceKind, lookup repository.Lookup[T]) *Resolver[T] {
	return &Resolver[T]{kind: kind, lookup: lookup}
}

// Kind returns the resource kind served by the resolver.
func (r *Resolver[T]) Kind() domain.ResourceKind {
	return r.kind
}

// Resolve returns the record identified by raw.
func (r *Resolver[T]) Resolve(ctx context.Context, raw string) (*T, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, apperrors.NewValidationError(string(r.kind)+" id is required", nil)
	}

	record, err := r.lookup.GetByPublicID(ctx, raw)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewInternalError(err)
	}

	if key, ok := parseSurrogateKey(raw); ok {
		record, err = r.lookup.GetByKey(ctx, key)
		if err == nil {
			return record, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewInternalError(err)
		}
	}

	return nil, apperrors.NewNotFound(string(r.kind), map[string]any{"id": raw})
}

// parseSurrogateKey accepts positive base-10 integers written with digits only.
func parseSurrogateKey(raw string) (int64, bool) {
	if raw == "" || raw[0] < '0' || raw[0] > '9' {
		return 0, false
	}
	key, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || key <= 0 {
		return 0, false
	}
	return key, true
}
