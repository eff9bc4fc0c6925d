package jwt

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/taskboard/api/http/presenter"
	"github.com/artem13815/taskboard/pkg/auth"
)

const identityKey = "identity"

// NewAuthMiddleware returns a Fiber middleware that validates Bearer JWT
// (HS256) and resolves the subject against the user store. On success the
// full auth.Identity is placed into request locals for downstream handlers
// and role checks.
//
// The store lookup is what lets a deleted account invalidate its still
// unexpired tokens; it is the only revocation path this service has.
func NewAuthMiddleware(verifier auth.TokenVerifier, users auth.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return presenter.Error(c, http.StatusUnauthorized, presenter.CodeUnauthorized, "access denied: no token provided")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return presenter.Error(c, http.StatusUnauthorized, presenter.CodeUnauthorized, "access denied: invalid token format")
		}
		tokenStr := strings.TrimSpace(parts[1])

		userID, err := verifier.Verify(c.Context(), tokenStr)
		if err != nil {
			// Expired is surfaced separately so clients re-login instead
			// of retrying; both are still plain 401s.
			if errors.Is(err, auth.ErrTokenExpired) {
				return presenter.Error(c, http.StatusUnauthorized, presenter.CodeTokenExpired, "token has expired, please login again")
			}
			return presenter.Error(c, http.StatusUnauthorized, presenter.CodeInvalidToken, "invalid token")
		}

		user, err := users.GetByID(c.Context(), userID)
		if err != nil {
			if errors.Is(err, auth.ErrNotFound) {
				return presenter.Error(c, http.StatusUnauthorized, presenter.CodeUnauthorized, "user not found, token may be invalid")
			}
			return presenter.Error(c, http.StatusInternalServerError, presenter.CodeServerError, "internal server error during authentication")
		}

		c.Locals(identityKey, auth.Identity{
			UserID: user.ID,
			Email:  user.Email,
			Name:   user.Name,
			Role:   user.Role,
		})
		return c.Next()
	}
}

// SetIdentity attaches an identity the way NewAuthMiddleware does. Useful
// for composing custom middleware and for tests.
func SetIdentity(c *fiber.Ctx, identity auth.Identity) {
	c.Locals(identityKey, identity)
}

// IdentityFrom extracts the authenticated caller set by NewAuthMiddleware.
func IdentityFrom(c *fiber.Ctx) (auth.Identity, bool) {
	id, ok := c.Locals(identityKey).(auth.Identity)
	return id, ok
}
