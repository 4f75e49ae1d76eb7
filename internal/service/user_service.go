package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/music-library/internal/auth"
	"github.com/spec-kit/music-library/internal/config"
	"github.com/spec-kit/music-library/internal/domain"
	"github.com/spec-kit/music-library/internal/events"
	"github.com/spec-kit/music-library/internal/repository"
	apperrors "github.com/spec-kit/music-library/pkg/util"
)

// UserService implements account administration.
type UserService struct {
	accounts   repository.AccountRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	AccountRepo repository.AccountRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// UserFilter describes account listing filters. Role is matched case-insensitively.
type UserFilter struct {
	Role   string
	Limit  int
	Offset int
}

// UserCreateInput describes an admin-created account. An empty role means Viewer.
type UserCreateInput struct {
	Email    string
	Password string
	Role     string
}

// NewUserService builds the service.
func NewUserService(cfg config.Config, deps UserDependencies) *UserService {
	return &UserService{
		accounts:   deps.AccountRepo,
		dispatcher: deps.Dispatcher,
		logger:     loggerOrNop(deps.Logger),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// List returns accounts in creation order.
func (s *UserService) List(ctx context.Context, filter UserFilter) ([]domain.Account, error) {
	repoFilter := repository.AccountFilter{Page: repository.Page{Limit: filter.Limit, Offset: filter.Offset}}
	if strings.TrimSpace(filter.Role) != "" {
		role, ok := domain.ParseRole(filter.Role)
		if !ok {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": filter.Role})
		}
		repoFilter.Role = &role
	}

	accounts, err := s.accounts.List(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return accounts, nil
}

// Create adds an account with an explicit non-Admin role.
func (s *UserService) Create(ctx context.Context, input UserCreateInput) (*domain.Account, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("email and password are required", nil)
	}

	role := domain.RoleViewer
	if strings.TrimSpace(input.Role) != "" {
		parsed, ok := domain.ParseRole(input.Role)
		if !ok {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": input.Role})
		}
		role = parsed
	}
	if role == domain.RoleAdmin {
		return nil, apperrors.NewForbidden("cannot create an admin account")
	}

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already exists", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	account := &domain.Account{Email: email, PasswordHash: hash, Role: role}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, storeError(err, "account")
	}

	publish(ctx, s.dispatcher, s.logger, events.New(events.EventAccountRegistered, account.ID, events.AccountRegisteredPayload{
		Email: account.Email,
		Role:  account.Role,
	}))
	return account, nil
}

// Delete removes an account.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewNotFound("account", map[string]any{"id": id})
	}
	if err := s.accounts.Delete(ctx, id); err != nil {
		return storeError(err, "account")
	}
	s.logger.Info("account deleted", zap.String("account_id", id))
	return nil
}

// UpdateRole changes an account's role to Editor or Viewer.
func (s *UserService) UpdateRole(ctx context.Context, id, roleName string) (*domain.Account, error) {
	role, ok := domain.ParseRole(roleName)
	if !ok || role == domain.RoleAdmin {
		return nil, apperrors.NewValidationError("role must be Editor or Viewer", map[string]any{"role": roleName})
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewNotFound("account", map[string]any{"id": id})
	}

	account, err := s.accounts.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, storeError(err, "account")
	}
	return account, nil
}
