package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/music-library/pkg/util"
)

const identityKey = "auth_identity"

type identityCtxKey struct{}

// Verifier turns a raw session token into a verified identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// Middleware validates bearer tokens and enforces route policies.
type Middleware struct {
	verifier Verifier
}

// NewMiddleware constructs middleware.
func NewMiddleware(verifier Verifier) *Middleware {
	return &Middleware{verifier: verifier}
}

// Guard authenticates the request and checks the caller against policy.
func (m *Middleware) Guard(policy Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := BearerToken(c)
		if err != nil {
			return err
		}

		identity, err := m.verifier.Verify(c.UserContext(), token)
		if err != nil {
			return err
		}

		c.Locals(identityKey, identity)
		c.SetUserContext(WithIdentity(c.UserContext(), identity))

		if err := policy.Authorize(identity); err != nil {
			return err
		}
		return c.Next()
	}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", apperrors.NewUnauthorized("missing token")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", apperrors.NewUnauthorized("invalid authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}

// WithIdentity stores identity on ctx.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, identity)
}

// IdentityFrom returns the identity stored on ctx by the guard.
func IdentityFrom(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey{}).(*Identity)
	return identity, ok && identity != nil
}
