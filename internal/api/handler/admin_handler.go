package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tecnorev/commerce-api/internal/api/metrics"
	"github.com/tecnorev/commerce-api/internal/core/domain"
	"github.com/tecnorev/commerce-api/internal/core/ports"
)

// AdminHandler serves SUPER_ADMIN-only user management. Routes mounting it
// must carry the Auth and RBAC middleware.
type AdminHandler struct {
	auth  ports.AuthService
	users ports.UserService
	audit AuditDispatcher
}

func NewAdminHandler(auth ports.AuthService, users ports.UserService, audit AuditDispatcher) *AdminHandler {
	return &AdminHandler{auth: auth, users: users, audit: audit}
}

// ListUsers returns every non-deleted user.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []domain.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// CreateUser creates a user with any role, branch, and active flag.
//
// @Summary      Create a user (admin)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/admin/users [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "unknown role "+req.Role)
	}

	user, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      role,
		BranchID:  req.BranchID,
		IsActive:  req.IsActive,
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(user.Role)).Inc()
	h.audit.Enqueue(domain.AuditEvent{
		Email:     user.Email,
		Action:    domain.AuditRegister,
		ActorID:   actor.ID,
		RequestID: requestID(c),
	})

	return c.JSON(http.StatusCreated, user)
}

// GetUser returns any user by id.
//
// @Summary      Get a user by id
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/users/{id} [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	user, err := h.users.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUser partially updates any user, including role, branch, and the
// active flag.
//
// @Summary      Update a user (admin)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/admin/users/{id} [patch]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := userID(c)
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

	in, err := req.toInput()
	if err != nil {
		return err
	}

	updated, err := h.users.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}

	h.audit.Enqueue(domain.AuditEvent{
		Email:     updated.Email,
		Action:    domain.AuditUserUpdate,
		ActorID:   actor.ID,
		RequestID: requestID(c),
	})

	return c.JSON(http.StatusOK, updated)
}

// DeleteUser soft-deletes a user. Self-deletion is rejected.
//
// @Summary      Soft-delete a user
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  int  true  "User id"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := userID(c)
	if err != nil {
		return err
	}

	if err := h.users.Delete(c.Request().Context(), id, actor.ID); err != nil {
		return err
	}

	h.audit.Enqueue(domain.AuditEvent{
		Action:    domain.AuditUserDeleted,
		ActorID:   actor.ID,
		RequestID: requestID(c),
	})

	return c.NoContent(http.StatusNoContent)
}

// ListRoles returns the fixed set of five roles.
//
// @Summary      List available roles
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  roleResponse
// @Router       /api/admin/roles [get]
func (h *AdminHandler) ListRoles(c echo.Context) error {
	descriptions := map[domain.Role]string{
		domain.RoleSuperAdmin:    "Owner: sees all branches and finances",
		domain.RoleBranchManager: "Manager: controls their branch and its stock",
		domain.RoleSalesAgent:    "Salesperson: sells at POS and attends the counter",
		domain.RoleLogistics:     "Shipping handler: prepares packages",
		domain.RoleCustomer:      "Web buyer: only sees their own orders",
	}

	roles := make([]roleResponse, 0, len(descriptions))
	for _, r := range domain.AllRoles() {
		roles = append(roles, roleResponse{Name: string(r), Description: descriptions[r]})
	}
	return c.JSON(http.StatusOK, roles)
}

func userID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	return id, nil
}
