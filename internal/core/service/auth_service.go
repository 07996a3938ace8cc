package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tecnorev/commerce-api/internal/core/domain"
	"github.com/tecnorev/commerce-api/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo  ports.UserRepository
	codec *TokenCodec
	log   zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, codec *TokenCodec, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, codec: codec, log: log}
}

// Register creates a new user with a hashed password. The role defaults to
// CUSTOMER; callers privileged enough to assign another role are vetted by
// route protection, not here.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleCustomer
	}
	if _, err := domain.ParseRole(string(role)); err != nil {
		return nil, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		PasswordHash: hash,
		IsActive:     active,
		Role:         role,
		BranchID:     in.BranchID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// Login verifies email and password and issues a bearer token. Unknown
// email, wrong password, and inactive account all fail with the same
// ErrInvalidCredentials; a failed or timed-out lookup is treated as
// "not found" (fail closed).
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.TokenResult, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresIn, err := s.codec.Issue(user.Email)
	if err != nil {
		return nil, err
	}

	return &ports.TokenResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   expiresIn,
	}, nil
}
