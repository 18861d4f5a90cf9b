package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
)

const protectedKey = "protected"

// RequireAuth guards routes that need a signed-in visitor. It also marks the
// request as protected, so a later upstream 401 is answered with a redirect
// to the login page.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(protectedKey, true)

			sess, ok := SessionFrom(c)
			if !ok || !sess.Snapshot().IsAuthenticated {
				return domain.ErrNotAuthenticated
			}
			return next(c)
		}
	}
}

// RequireRole lets through signed-in users holding one of allowedRoles. Use it
// after RequireAuth.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := SessionFrom(c)
			if !ok {
				return domain.ErrNotAuthenticated
			}
			user := sess.Snapshot().User
			if user == nil {
				return domain.ErrNotAuthenticated
			}
			if _, ok := allowed[user.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// IsProtected reports whether RequireAuth ran for this request.
func IsProtected(c echo.Context) bool {
	protected, _ := c.Get(protectedKey).(bool)
	return protected
}
