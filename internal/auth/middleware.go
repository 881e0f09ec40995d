package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/GoACL-Admin/GoACL-Admin/internal/apperr"
	accesslog "github.com/GoACL-Admin/GoACL-Admin/internal/logger/adapter/fiber"
)

// LocalClaims is the fiber.Ctx local holding the verified *Claims.
const LocalClaims = "claims"

const bearerPrefix = "Bearer "

// TokenVerifier verifies bearer tokens.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// RequireToken creates Fiber middleware that rejects requests without a valid bearer token.
// The claims are stored in the request locals, see ClaimsFrom.
func RequireToken(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
			return apperr.Unauthorized(ErrMissingToken.Error())
		}

		claims, err := verifier.Verify(strings.TrimSpace(header[len(bearerPrefix):]))
		if err != nil {
			return err
		}

		c.Locals(LocalClaims, claims)
		c.Locals(accesslog.LocalUser, claims.User)
		c.Locals(accesslog.LocalNamespace, claims.Namespace)

		return c.Next()
	}
}

// ClaimsFrom returns the claims stored by RequireToken.
func ClaimsFrom(c *fiber.Ctx) (*Claims, bool) {
	claims, ok := c.Locals(LocalClaims).(*Claims)

	return claims, ok
}
