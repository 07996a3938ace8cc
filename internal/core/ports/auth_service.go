package ports

import (
	"context"

	"github.com/tecnorev/commerce-api/internal/core/domain"
)

// RegisterInput carries the fields needed to create a user account.
// Role and BranchID are trusted as given: route protection decides whether
// the caller may assign them.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     int64
	Role      domain.Role // defaults to CUSTOMER when empty
	BranchID  *int64
	IsActive  *bool // defaults to true
}

// TokenResult is returned by a successful login.
type TokenResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// AuthService implements registration and credential-based login.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login returns domain.ErrInvalidCredentials for unknown email, wrong
	// password, and inactive account alike.
	Login(ctx context.Context, email, password string) (*TokenResult, error)
}
