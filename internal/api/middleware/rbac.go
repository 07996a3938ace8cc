package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/tecnorev/commerce-api/internal/core/domain"
)

// RBAC enforces role-based access control over the user resolved by Auth.
// It must run after Auth on the same route.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	rule := domain.RoleIn(allowedRoles...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(UserContextKey).(*domain.User)
			if err := domain.Authorize(user, rule); err != nil {
				return err
			}
			return next(c)
		}
	}
}
