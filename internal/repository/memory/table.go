package memory

import (
	"slices"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/music-library/internal/repository"
)

// recordFields exposes the store-managed columns of a catalog record.
type recordFields[T any] func(row *T) (key *int64, publicID *string, createdAt, updatedAt *time.Time)

// table is a concurrency-safe keyed collection with a unique public id index.
type table[T any] struct {
	mu       sync.RWMutex
	rows     map[int64]T
	byPublic map[string]int64
	nextKey  int64
	fields   recordFields[T]
	now      func() time.Time
}

func newTable[T any](fields recordFields[T]) *table[T] {
	return &table[T]{
		rows:     make(map[int64]T),
		byPublic: make(map[string]int64),
		fields:   fields,
		now:      time.Now,
	}
}

func (t *table[T]) insert(row *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	key, publicID, createdAt, updatedAt := t.fields(row)
	if _, exists := t.byPublic[*publicID]; exists {
		return repository.ErrDuplicate
	}
	t.nextKey++
	*key = t.nextKey
	*createdAt = t.now().UTC()
	*updatedAt = *createdAt

	t.rows[*key] = *row
	t.byPublic[*publicID] = *key
	return nil
}

func (t *table[T]) update(row *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	key, publicID, createdAt, updatedAt := t.fields(row)
	existing, ok := t.rows[*key]
	if !ok {
		return pgx.ErrNoRows
	}
	_, storedPublicID, storedCreatedAt, _ := t.fields(&existing)
	*publicID = *storedPublicID
	*createdAt = *storedCreatedAt
	*updatedAt = t.now().UTC()
	t.rows[*key] = *row
	return nil
}

func (t *table[T]) delete(key int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	existing, ok := t.rows[key]
	if !ok {
		return pgx.ErrNoRows
	}
	_, publicID, _, _ := t.fields(&existing)
	delete(t.byPublic, *publicID)
	delete(t.rows, key)
	return nil
}

func (t *table[T]) getByKey(key int64) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[key]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &row, nil
}

func (t *table[T]) getByPublicID(publicID string) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	key, ok := t.byPublic[publicID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	row := t.rows[key]
	return &row, nil
}

func (t *table[T]) list(match func(row *T) bool, page repository.Page) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	keys := make([]int64, 0, len(t.rows))
	for key := range t.rows {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	page = page.Normalize()
	result := []T{}
	skipped := 0
	for _, key := range keys {
		row := t.rows[key]
		if !match(&row) {
			continue
		}
		if skipped < page.Offset {
			skipped++
			continue
		}
		result = append(result, row)
		if len(result) == page.Limit {
			break
		}
	}
	return result
}
