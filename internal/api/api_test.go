package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tecnorev/commerce-api/internal/api/handler"
	"github.com/tecnorev/commerce-api/internal/api/middleware"
	"github.com/tecnorev/commerce-api/internal/core/domain"
	"github.com/tecnorev/commerce-api/internal/core/ports"
	"github.com/tecnorev/commerce-api/internal/core/service"
)

// memUserRepo backs the full-stack tests with an in-memory store so the
// whole request path (routing, middleware, handlers, services, error
// rendering) runs without external dependencies.
type memUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*domain.User)}
}

func clone(u *domain.User) *domain.User {
	c := *u
	if u.BranchID != nil {
		b := *u.BranchID
		c.BranchID = &b
	}
	return &c
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email && !u.IsDeleted {
			return clone(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.IsDeleted {
		return nil, domain.ErrUserNotFound
	}
	return clone(u), nil
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email && !u.IsDeleted {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	created := clone(user)
	created.ID = r.nextID
	r.users[created.ID] = clone(created)
	return created, nil
}

func (r *memUserRepo) Update(_ context.Context, id int64, patch ports.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.IsDeleted {
		return nil, domain.ErrUserNotFound
	}
	if patch.Email != nil {
		for _, other := range r.users {
			if other.ID != id && other.Email == *patch.Email && !other.IsDeleted {
				return nil, domain.ErrEmailTaken
			}
		}
		u.Email = *patch.Email
	}
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.Phone != nil {
		u.Phone = *patch.Phone
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	if patch.IsActive != nil {
		u.IsActive = *patch.IsActive
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.BranchID != nil {
		b := *patch.BranchID
		u.BranchID = &b
	}
	u.UpdatedAt = time.Now().UTC()
	return clone(u), nil
}

func (r *memUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for id := int64(1); id <= r.nextID; id++ {
		if u, ok := r.users[id]; ok && !u.IsDeleted {
			out = append(out, *clone(u))
		}
	}
	return out, nil
}

func (r *memUserRepo) SoftDelete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.IsDeleted {
		return domain.ErrUserNotFound
	}
	u.IsDeleted = true
	return nil
}

type openLimiter struct{}

func (openLimiter) Allow(context.Context, string) bool { return true }
func (openLimiter) Fail(context.Context, string)       {}
func (openLimiter) Reset(context.Context, string)      {}

type dropAudit struct{}

func (dropAudit) Enqueue(domain.AuditEvent) {}

// newTestServer wires the real handlers, middleware, services, and error
// handler over the in-memory repository, mirroring the production route
// layout.
func newTestServer(t *testing.T) (*echo.Echo, *service.AuthService) {
	t.Helper()
	repo := newMemUserRepo()
	log := zerolog.Nop()

	codec, err := service.NewTokenCodec(service.TokenConfig{Secret: "test-secret", TTL: time.Hour})
	if err != nil {
		t.Fatalf("codec: %v", err)
	}

	authService := service.NewAuthService(repo, codec, log)
	userService := service.NewUserService(repo, log)

	authHandler := handler.NewAuthHandler(authService, userService, openLimiter{}, dropAudit{})
	adminHandler := handler.NewAdminHandler(authService, userService, dropAudit{})
	authMiddleware := middleware.Auth(codec, repo)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/token", authHandler.Token)
	auth.GET("/profile", authHandler.GetProfile, authMiddleware)
	auth.PATCH("/profile", authHandler.UpdateProfile, authMiddleware)

	admin := e.Group("/api/admin", authMiddleware, middleware.RBAC(domain.RoleSuperAdmin))
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users", adminHandler.CreateUser)
	admin.GET("/users/:id", adminHandler.GetUser)
	admin.PATCH("/users/:id", adminHandler.UpdateUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/roles", adminHandler.ListRoles)

	return e, authService
}

func do(e *echo.Echo, method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body is not the standard envelope: %s", rec.Body.String())
	}
	return body.Detail
}

func loginToken(t *testing.T, e *echo.Echo, email, password string) string {
	t.Helper()
	rec := do(e, http.MethodPost, "/api/auth/token", "", `{"email":"`+email+`","password":"`+password+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", email, rec.Code, rec.Body.String())
	}
	var result ports.TokenResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid token body: %v", err)
	}
	return result.AccessToken
}

func seedSuperAdmin(t *testing.T, svc *service.AuthService) *domain.User {
	t.Helper()
	admin, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:     "root@x.com",
		Password:  "rootpw12",
		FirstName: "Root",
		LastName:  "Admin",
		Phone:     5500000000,
		Role:      domain.RoleSuperAdmin,
	})
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return admin
}

func TestRegisterLoginProfileFlow(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/auth/register", "",
		`{"email":"bob@x.com","password":"pw123456","first_name":"Bob","last_name":"Stone","phone":5512345678}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("register response leaks credentials: %s", rec.Body.String())
	}

	// Duplicate registration is rejected with the canonical message.
	rec = do(e, http.MethodPost, "/api/auth/register", "",
		`{"email":"bob@x.com","password":"pw123456","first_name":"Bob","last_name":"Stone","phone":5512345678}`)
	if rec.Code != http.StatusBadRequest || detail(t, rec) != "Email already registered" {
		t.Fatalf("duplicate register: got %d %s", rec.Code, rec.Body.String())
	}

	token := loginToken(t, e, "bob@x.com", "pw123456")

	rec = do(e, http.MethodGet, "/api/auth/profile", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("profile: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var profile map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &profile); err != nil {
		t.Fatalf("invalid profile body: %v", err)
	}
	if profile["email"] != "bob@x.com" {
		t.Fatalf("unexpected profile: %v", profile)
	}

	// Partial update changes only the named field.
	rec = do(e, http.MethodPatch, "/api/auth/profile", token, `{"first_name":"Robert"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch profile: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &profile); err != nil {
		t.Fatalf("invalid patch body: %v", err)
	}
	if profile["first_name"] != "Robert" || profile["email"] != "bob@x.com" {
		t.Fatalf("patch changed the wrong fields: %v", profile)
	}
}

func TestUnauthenticatedRequests(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodGet, "/api/auth/profile", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if rec.Header().Get(echo.HeaderWWWAuthenticate) != "Bearer" {
		t.Fatalf("401 must carry a WWW-Authenticate challenge")
	}
	if detail(t, rec) != "Could not validate credentials" {
		t.Fatalf("unexpected detail: %s", detail(t, rec))
	}

	rec = do(e, http.MethodGet, "/api/auth/profile", "garbage-token", "")
	if rec.Code != http.StatusUnauthorized || detail(t, rec) != "Could not validate credentials" {
		t.Fatalf("garbage token: got %d %s", rec.Code, rec.Body.String())
	}

	rec = do(e, http.MethodPost, "/api/auth/token", "", `{"email":"ghost@x.com","password":"whatever1"}`)
	if rec.Code != http.StatusUnauthorized || detail(t, rec) != "Incorrect email or password" {
		t.Fatalf("bad login: got %d %s", rec.Code, rec.Body.String())
	}
}

func TestAdminRoutesAreSuperAdminOnly(t *testing.T) {
	e, svc := newTestServer(t)
	seedSuperAdmin(t, svc)

	rec := do(e, http.MethodPost, "/api/auth/register", "",
		`{"email":"bob@x.com","password":"pw123456","first_name":"Bob","last_name":"Stone","phone":5512345678}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", rec.Code, rec.Body.String())
	}

	customerToken := loginToken(t, e, "bob@x.com", "pw123456")
	rec = do(e, http.MethodGet, "/api/admin/users", customerToken, "")
	if rec.Code != http.StatusForbidden || detail(t, rec) != "Access denied" {
		t.Fatalf("customer on admin route: got %d %s", rec.Code, rec.Body.String())
	}

	adminToken := loginToken(t, e, "root@x.com", "rootpw12")
	rec = do(e, http.MethodGet, "/api/admin/users", adminToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin list: got %d %s", rec.Code, rec.Body.String())
	}
	var users []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("invalid list body: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}

	rec = do(e, http.MethodGet, "/api/admin/roles", adminToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("roles: got %d", rec.Code)
	}
}

func TestAdminLifecycle(t *testing.T) {
	e, svc := newTestServer(t)
	admin := seedSuperAdmin(t, svc)
	adminToken := loginToken(t, e, "root@x.com", "rootpw12")

	rec := do(e, http.MethodPost, "/api/admin/users", adminToken,
		`{"email":"mgr@x.com","password":"pw123456","first_name":"May","last_name":"Chen","phone":5512345678,"role":"BRANCH_MANAGER","branch_id":3}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("admin create: got %d %s", rec.Code, rec.Body.String())
	}
	var created map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid create body: %v", err)
	}
	if created["role"] != "BRANCH_MANAGER" {
		t.Fatalf("role not assigned: %v", created)
	}
	managerID := int64(created["id"].(float64))
	managerToken := loginToken(t, e, "mgr@x.com", "pw123456")

	// Deactivation takes effect on the next request even though the old
	// token still verifies cryptographically.
	rec = do(e, http.MethodPatch, "/api/admin/users/"+itoa(managerID), adminToken, `{"is_active":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("deactivate: got %d %s", rec.Code, rec.Body.String())
	}
	rec = do(e, http.MethodGet, "/api/auth/profile", managerToken, "")
	if rec.Code != http.StatusForbidden || detail(t, rec) != "Inactive user" {
		t.Fatalf("deactivated access: got %d %s", rec.Code, rec.Body.String())
	}

	// Self-deletion is refused; the account survives.
	rec = do(e, http.MethodDelete, "/api/admin/users/"+itoa(admin.ID), adminToken, "")
	if rec.Code != http.StatusBadRequest || detail(t, rec) != "Cannot delete your own account" {
		t.Fatalf("self delete: got %d %s", rec.Code, rec.Body.String())
	}

	rec = do(e, http.MethodDelete, "/api/admin/users/"+itoa(managerID), adminToken, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: got %d %s", rec.Code, rec.Body.String())
	}

	// A deleted subject's token stops resolving.
	rec = do(e, http.MethodGet, "/api/auth/profile", managerToken, "")
	if rec.Code != http.StatusUnauthorized || detail(t, rec) != "Could not validate credentials" {
		t.Fatalf("deleted subject: got %d %s", rec.Code, rec.Body.String())
	}
	rec = do(e, http.MethodGet, "/api/admin/users/"+itoa(managerID), adminToken, "")
	if rec.Code != http.StatusNotFound || detail(t, rec) != "User not found" {
		t.Fatalf("deleted lookup: got %d %s", rec.Code, rec.Body.String())
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
