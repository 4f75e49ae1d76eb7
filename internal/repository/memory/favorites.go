package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/music-library/internal/domain"
	"github.com/spec-kit/music-library/internal/repository"
)

// FavoriteStore is an in-memory repository.FavoriteRepository. Mutations for
// one account are serialized by a lock dedicated to that account.
type FavoriteStore struct {
	mu        sync.RWMutex
	aggregate map[string]*domain.Favorites

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

var _ repository.FavoriteRepository = (*FavoriteStore)(nil)

// NewFavoriteStore returns an empty store.
func NewFavoriteStore() *FavoriteStore {
	return &FavoriteStore{
		aggregate: make(map[string]*domain.Favorites),
		locks:     make(map[string]*sync.Mutex),
	}
}

func (s *FavoriteStore) Get(_ context.Context, accountID string) (*domain.Favorites, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fav, ok := s.aggregate[accountID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return fav.Clone(), nil
}

func (s *FavoriteStore) Mutate(ctx context.Context, accountID string, create bool, fn repository.FavoriteMutation) (*domain.Favorites, error) {
	lock := s.accountLock(accountID)
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	current, ok := s.aggregate[accountID]
	s.mu.RUnlock()

	var working *domain.Favorites
	switch {
	case ok:
		working = current.Clone()
	case create:
		working = domain.NewFavorites(uuid.NewString(), accountID)
		working.CreatedAt = time.Now().UTC()
	default:
		return nil, pgx.ErrNoRows
	}

	if err := fn(working); err != nil {
		return nil, err
	}
	working.UpdatedAt = time.Now().UTC()

	s.mu.Lock()
	s.aggregate[accountID] = working
	s.mu.Unlock()
	return working.Clone(), nil
}

func (s *FavoriteStore) accountLock(accountID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	lock, ok := s.locks[accountID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[accountID] = lock
	}
	return lock
}
