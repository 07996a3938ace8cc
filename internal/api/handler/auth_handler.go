package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tecnorev/commerce-api/internal/api/metrics"
	"github.com/tecnorev/commerce-api/internal/core/domain"
	"github.com/tecnorev/commerce-api/internal/core/ports"
)

// LoginLimiter throttles repeated failed logins per email.
type LoginLimiter interface {
	Allow(ctx context.Context, email string) bool
	Fail(ctx context.Context, email string)
	Reset(ctx context.Context, email string)
}

// AuditDispatcher is the interface handlers use to enqueue audit events.
type AuditDispatcher interface {
	Enqueue(event domain.AuditEvent)
}

// AuthHandler serves registration, token login, and the profile endpoints.
type AuthHandler struct {
	auth    ports.AuthService
	users   ports.UserService
	limiter LoginLimiter
	audit   AuditDispatcher
}

func NewAuthHandler(auth ports.AuthService, users ports.UserService, limiter LoginLimiter, audit AuditDispatcher) *AuthHandler {
	return &AuthHandler{auth: auth, users: users, limiter: limiter, audit: audit}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	in := ports.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		BranchID:  req.BranchID,
	}
	if req.Role != "" {
		role, err := domain.ParseRole(req.Role)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "unknown role "+req.Role)
		}
		in.Role = role
	}

	user, err := h.auth.Register(c.Request().Context(), in)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(user.Role)).Inc()
	h.audit.Enqueue(domain.AuditEvent{
		Email:     user.Email,
		Action:    domain.AuditRegister,
		RequestID: requestID(c),
	})

	return c.JSON(http.StatusCreated, user)
}

// Token authenticates a user and returns a bearer token.
//
// @Summary      Login and obtain an access token
// @Tags         auth
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        body  body      tokenRequest  true  "Login credentials"
// @Success      200   {object}  ports.TokenResult
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/auth/token [post]
func (h *AuthHandler) Token(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	email := req.subject()
	if email == "" || req.Password == "" {
		return domain.ErrInvalidCredentials
	}

	ctx := c.Request().Context()
	if !h.limiter.Allow(ctx, email) {
		metrics.LoginThrottledTotal.Inc()
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many failed login attempts")
	}

	result, err := h.auth.Login(ctx, email, req.Password)
	if err != nil {
		if err == domain.ErrInvalidCredentials {
			h.limiter.Fail(ctx, email)
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			h.audit.Enqueue(domain.AuditEvent{
				Email:     email,
				Action:    domain.AuditLoginFailure,
				RequestID: requestID(c),
			})
		}
		return err
	}

	h.limiter.Reset(ctx, email)
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.audit.Enqueue(domain.AuditEvent{
		Email:     email,
		Action:    domain.AuditLoginSuccess,
		RequestID: requestID(c),
	})

	return c.JSON(http.StatusOK, result)
}

// GetProfile returns the authenticated user's own record.
//
// @Summary      Get own profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/auth/profile [get]
func (h *AuthHandler) GetProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile partially updates the authenticated user's own record.
// Role, branch, and active-flag changes require SUPER_ADMIN.
//
// @Summary      Update own profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/auth/profile [patch]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if req.privileged() && user.Role != domain.RoleSuperAdmin {
		return domain.ErrForbidden
	}

	in, err := req.toInput()
	if err != nil {
		return err
	}

	updated, err := h.users.Update(c.Request().Context(), user.ID, in)
	if err != nil {
		return err
	}

	h.audit.Enqueue(domain.AuditEvent{
		Email:     updated.Email,
		Action:    domain.AuditProfileUpdate,
		ActorID:   user.ID,
		RequestID: requestID(c),
	})

	return c.JSON(http.StatusOK, updated)
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
