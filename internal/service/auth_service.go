package service

import (
	"context"
	"errors"
	"strings"
	"time"

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

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Account   *domain.Account
}

// AuthService coordinates registration, login, logout and token verification.
//
// Tokens are self-verifying; the revocation store only holds tokens that were
// explicitly logged out. A token that was never logged out stays valid until
// it expires.
type AuthService struct {
	accounts   repository.AccountRepository
	tokenMgr   *auth.TokenManager
	revoked    auth.RevocationStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	AccountRepo repository.AccountRepository
	Revocations auth.RevocationStore
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		accounts:   deps.AccountRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL()),
		revoked:    deps.Revocations,
		dispatcher: deps.Dispatcher,
		logger:     loggerOrNop(deps.Logger),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates an account. The first account ever registered becomes
// Admin, every later one Viewer.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.Account, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password are required", nil)
	}

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already exists", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	account := &domain.Account{
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleViewer,
	}
	if err := s.accounts.Register(ctx, account, domain.RoleAdmin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("email already exists", map[string]any{"email": email})
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("account registered", zap.String("account_id", account.ID), zap.String("role", string(account.Role)))
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventAccountRegistered, account.ID, events.AccountRegisteredPayload{
		Email: account.Email,
		Role:  account.Role,
	}))
	return account, nil
}

// Authenticate checks credentials and issues a session token.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password are required", nil)
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, storeError(err, "account")
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.NewInternalError(err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(account)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &Session{Token: token, ExpiresAt: exp, Account: account}, nil
}

// Invalidate revokes token. Revoking the same token twice is not an error.
func (s *AuthService) Invalidate(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return apperrors.NewValidationError("token is required", nil)
	}

	expiresAt := time.Now().Add(s.tokenMgr.TTL())
	accountID := ""
	if claims, err := s.tokenMgr.ParseToken(token); err == nil {
		expiresAt = claims.ExpiresAt.Time
		accountID = claims.Subject
	}

	if err := s.revoked.Revoke(ctx, token, expiresAt); err != nil {
		return apperrors.NewInternalError(err)
	}

	if accountID != "" {
		publish(ctx, s.dispatcher, s.logger, events.New(events.EventAccountLoggedOut, accountID, nil))
	}
	return nil
}

// Verify returns the identity carried by a valid, unrevoked token.
func (s *AuthService) Verify(ctx context.Context, token string) (*auth.Identity, error) {
	if token == "" {
		return nil, apperrors.NewUnauthorized("missing token")
	}

	claims, err := s.tokenMgr.ParseToken(token)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid or expired token")
	}

	revoked, err := s.revoked.IsRevoked(ctx, token)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if revoked {
		return nil, apperrors.NewUnauthorized("token has been revoked")
	}
	return auth.IdentityFromClaims(claims), nil
}

// ChangePassword verifies the current password before storing the new hash.
func (s *AuthService) ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return apperrors.NewValidationError("old_password and new_password are required", nil)
	}
	if _, err := uuid.Parse(accountID); err != nil {
		return apperrors.NewNotFound("account", nil)
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return storeError(err, "account")
	}
	if err := auth.ComparePassword(account.PasswordHash, currentPassword); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return apperrors.NewUnauthorized("invalid credentials")
		}
		return apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return storeError(s.accounts.UpdatePassword(ctx, accountID, hash), "account")
}

// TokenManager exposes the underlying token manager.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
