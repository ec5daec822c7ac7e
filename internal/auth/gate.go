package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/student-portal/internal/domain"
	apperrors "github.com/spec-kit/student-portal/pkg/util"
)

const identityKey = "auth_identity"

// AccessGate validates presented tokens and enforces role-based access.
// Both the REST middleware and the websocket handshake go through it.
type AccessGate struct {
	codec *TokenCodec
}

// NewAccessGate constructs the gate around a token codec.
func NewAccessGate(codec *TokenCodec) *AccessGate {
	return &AccessGate{codec: codec}
}

// AuthenticateToken verifies a raw token string and returns the identity.
func (g *AccessGate) AuthenticateToken(token string) (domain.Identity, error) {
	return g.codec.Verify(token)
}

// Authorize fails with Forbidden unless the identity's role is in the allowed set.
// An empty set means any authenticated role.
func (g *AccessGate) Authorize(identity domain.Identity, allowed ...domain.Role) error {
	if len(allowed) == 0 {
		return nil
	}
	for _, role := range allowed {
		if identity.Role == role {
			return nil
		}
	}
	return apperrors.NewForbidden("insufficient role")
}

// Authenticate is the bearer-token middleware for protected routes.
// The verified identity is stored in Locals; handlers never parse tokens.
func (g *AccessGate) Authenticate(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	identity, err := g.codec.Verify(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized(err.Error())
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

// RequireRole ensures the caller holds one of the allowed roles.
func (g *AccessGate) RequireRole(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if err := g.Authorize(identity, allowed...); err != nil {
			return err
		}
		return c.Next()
	}
}

// IdentityFromContext retrieves the authenticated identity set by Authenticate.
func IdentityFromContext(c *fiber.Ctx) (domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return domain.Identity{}, false
	}
	identity, ok := val.(domain.Identity)
	return identity, ok
}
