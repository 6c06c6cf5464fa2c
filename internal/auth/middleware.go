package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pizza-delivery/internal/domain"
)

const identityKey = "auth_identity"

// AuthMiddleware exposes the guard as fiber handlers.
type AuthMiddleware struct {
	guard *Guard
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(guard *Guard) *AuthMiddleware {
	return &AuthMiddleware{guard: guard}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	user, err := m.guard.Authenticate(c.UserContext(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}
	c.Locals(identityKey, user)
	return c.Next()
}

// RequireRoles rejects callers whose role is not in allowed. It must run after Handle.
func (m *AuthMiddleware) RequireRoles(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := IdentityFromContext(c)
		if !ok {
			return domain.ErrMissingToken
		}
		if _, err := m.guard.Authorize(user, allowed...); err != nil {
			return err
		}
		return c.Next()
	}
}

// IdentityFromContext retrieves the authenticated identity.
func IdentityFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok && user != nil
}
