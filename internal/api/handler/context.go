package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/tecnorev/commerce-api/internal/api/middleware"
	"github.com/tecnorev/commerce-api/internal/core/domain"
)

// currentUser extracts the identity resolved by the Auth middleware. Its
// presence proves the middleware ran; a protected route reached without it is
// a wiring bug and is treated as unauthenticated rather than letting the
// request through.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.UserContextKey).(*domain.User)
	if user == nil {
		return nil, domain.ErrInvalidToken
	}
	return user, nil
}
