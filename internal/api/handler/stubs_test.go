package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tecnorev/commerce-api/internal/core/domain"
	"github.com/tecnorev/commerce-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.TokenResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.TokenResult, error) {
	return s.loginFn(ctx, email, password)
}

type stubUserService struct {
	getFn    func(ctx context.Context, id int64) (*domain.User, error)
	updateFn func(ctx context.Context, id int64, in ports.UpdateUserInput) (*domain.User, error)
	listFn   func(ctx context.Context) ([]domain.User, error)
	deleteFn func(ctx context.Context, id, actorID int64) error
}

func (s *stubUserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) Update(ctx context.Context, id int64, in ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubUserService) List(ctx context.Context) ([]domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Delete(ctx context.Context, id, actorID int64) error {
	return s.deleteFn(ctx, id, actorID)
}

// stubLimiter records throttle calls; allow controls the gate.
type stubLimiter struct {
	allow  bool
	fails  []string
	resets []string
}

func (l *stubLimiter) Allow(context.Context, string) bool { return l.allow }
func (l *stubLimiter) Fail(_ context.Context, email string) {
	l.fails = append(l.fails, email)
}
func (l *stubLimiter) Reset(_ context.Context, email string) {
	l.resets = append(l.resets, email)
}

// captureAudit collects enqueued events for assertions.
type captureAudit struct {
	events []domain.AuditEvent
}

func (a *captureAudit) Enqueue(e domain.AuditEvent) { a.events = append(a.events, e) }

func (a *captureAudit) last(t *testing.T) domain.AuditEvent {
	t.Helper()
	if len(a.events) == 0 {
		t.Fatalf("no audit event enqueued")
	}
	return a.events[len(a.events)-1]
}

func newTestContext(t *testing.T, method, target, contentType string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
