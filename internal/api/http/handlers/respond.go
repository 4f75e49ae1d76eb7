package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/music-library/internal/api/dto"
	"github.com/spec-kit/music-library/internal/auth"
	apperrors "github.com/spec-kit/music-library/pkg/util"
)

func respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(dto.Envelope{Status: status, Data: data, Message: message})
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return nil
}

func currentIdentity(c *fiber.Ctx) (*auth.Identity, error) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return identity, nil
}

func parsePage(c *fiber.Ctx) (limit, offset int, err error) {
	limitPtr, err := optionalInt(c, "limit")
	if err != nil {
		return 0, 0, err
	}
	offsetPtr, err := optionalInt(c, "offset")
	if err != nil {
		return 0, 0, err
	}
	if limitPtr != nil {
		limit = *limitPtr
	}
	if offsetPtr != nil {
		offset = *offsetPtr
	}
	return limit, offset, nil
}

func optionalInt(c *fiber.Ctx, key string) (*int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperrors.NewValidationError(key+" must be an integer", map[string]any{key: raw})
	}
	return &value, nil
}

func optionalBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperrors.NewValidationError(key+" must be a boolean", map[string]any{key: raw})
	}
	return &value, nil
}

func optionalString(c *fiber.Ctx, key string) *string {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	return &raw
}
