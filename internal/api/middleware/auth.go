package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tecnorev/commerce-api/internal/api/metrics"
	"github.com/tecnorev/commerce-api/internal/core/domain"
)

// UserContextKey is the echo context key under which Auth stores the
// resolved *domain.User.
const UserContextKey = "auth_user"

// TokenDecoder verifies a bearer token and returns its subject.
type TokenDecoder interface {
	Decode(token string) (string, error)
}

// Auth resolves the bearer token into a live user and injects it into the
// request context. This is the single choke point every protected route
// passes through: the subject is re-read from the store on each request, so
// a user deactivated or soft-deleted after token issuance is rejected here
// even though the token itself still verifies.
//
// Missing, malformed, expired, or unresolvable tokens yield 401; a token
// that resolves to an inactive user yields 403.
func Auth(codec TokenDecoder, users userLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get("Authorization"))
			if !ok {
				metrics.TokenRejectionsTotal.WithLabelValues("missing_header").Inc()
				return domain.ErrInvalidToken
			}

			subject, err := codec.Decode(token)
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return domain.ErrInvalidToken
			}

			user, err := users.FindByEmail(c.Request().Context(), subject)
			if err != nil {
				// Covers subjects deleted after issuance and store failures
				// alike: fail closed as unauthenticated.
				metrics.TokenRejectionsTotal.WithLabelValues("unknown_subject").Inc()
				return domain.ErrInvalidToken
			}
			if !user.IsActive {
				metrics.TokenRejectionsTotal.WithLabelValues("inactive_user").Inc()
				return domain.ErrInactiveUser
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// userLookup is the slice of the user repository the resolver needs.
type userLookup interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
