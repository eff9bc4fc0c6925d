// Package rbac gates operations on the caller's role. It runs strictly
// after the JWT auth middleware, which is what puts the identity into
// request locals.
package rbac

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/taskboard/api/http/presenter"
	"github.com/artem13815/taskboard/pkg/auth"
	"github.com/artem13815/taskboard/pkg/security/jwt"
)

// RequireRole allows the request through only when the authenticated
// caller holds one of the given roles. A missing identity is treated as
// unauthenticated rather than forbidden.
func RequireRole(allowed ...auth.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := jwt.IdentityFrom(c)
		if !ok {
			return presenter.Error(c, http.StatusUnauthorized, presenter.CodeUnauthorized, "authentication required")
		}
		for _, role := range allowed {
			if identity.Role == role {
				return c.Next()
			}
		}
		names := make([]string, len(allowed))
		for i, role := range allowed {
			names[i] = role.String()
		}
		msg := fmt.Sprintf("access denied: required role(s): %s, your role: %s",
			strings.Join(names, " or "), identity.Role)
		return presenter.Error(c, http.StatusForbidden, presenter.CodeForbidden, msg)
	}
}
