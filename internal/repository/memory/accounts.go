package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/music-library/internal/domain"
	"github.com/spec-kit/music-library/internal/repository"
)

// AccountStore is an in-memory repository.AccountRepository.
type AccountStore struct {
	mu      sync.RWMutex
	byID    map[string]domain.Account
	byEmail map[string]string
	order   []string
}

var _ repository.AccountRepository = (*AccountStore)(nil)

// NewAccountStore returns an empty store.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		byID:    make(map[string]domain.Account),
		byEmail: make(map[string]string),
	}
}

func (s *AccountStore) Register(_ context.Context, account *domain.Account, bootstrapRole domain.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.byID) == 0 {
		account.Role = bootstrapRole
	}
	return s.insertLocked(account)
}

func (s *AccountStore) Create(_ context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insertLocked(account)
}

func (s *AccountStore) insertLocked(account *domain.Account) error {
	if _, exists := s.byEmail[account.Email]; exists {
		return repository.ErrDuplicate
	}
	account.ID = uuid.NewString()
	account.CreatedAt = time.Now().UTC()
	account.UpdatedAt = account.CreatedAt

	s.byID[account.ID] = *account
	s.byEmail[account.Email] = account.ID
	s.order = append(s.order, account.ID)
	return nil
}

func (s *AccountStore) GetByID(_ context.Context, id string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &account, nil
}

func (s *AccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	s.mu.RLock()
	id, ok := s.byEmail[email]
	s.mu.RUnlock()
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return s.GetByID(ctx, id)
}

func (s *AccountStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.byID)), nil
}

func (s *AccountStore) List(_ context.Context, filter repository.AccountFilter) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	page := filter.Page.Normalize()
	result := []domain.Account{}
	skipped := 0
	for _, id := range s.order {
		account := s.byID[id]
		if filter.Role != nil && account.Role != *filter.Role {
			continue
		}
		if skipped < page.Offset {
			skipped++
			continue
		}
		result = append(result, account)
		if len(result) == page.Limit {
			break
		}
	}
	return result, nil
}

func (s *AccountStore) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	account.Role = role
	account.UpdatedAt = time.Now().UTC()
	s.byID[id] = account
	return &account, nil
}

func (s *AccountStore) UpdatePassword(_ context.Context, id, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	account.PasswordHash = passwordHash
	account.UpdatedAt = time.Now().UTC()
	s.byID[id] = account
	return nil
}

func (s *AccountStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	delete(s.byID, id)
	delete(s.byEmail, account.Email)
	s.order = slices.DeleteFunc(s.order, func(existing string) bool { return existing == id })
	return nil
}
