package ports

import (
	"context"

	"github.com/tecnorev/commerce-api/internal/core/domain"
)

// UserPatch is a presence-based partial update: nil fields are left
// untouched. It carries a password hash only — plaintext passwords never
// reach the repository.
type UserPatch struct {
	Email        *string
	FirstName    *string
	LastName     *string
	Phone        *int64
	PasswordHash *string
	IsActive     *bool
	Role         *domain.Role
	BranchID     *int64
}

// Empty reports whether the patch would change nothing.
func (p UserPatch) Empty() bool {
	return p.Email == nil && p.FirstName == nil && p.LastName == nil &&
		p.Phone == nil && p.PasswordHash == nil && p.IsActive == nil &&
		p.Role == nil && p.BranchID == nil
}

// UserRepository defines the persistence contract for user records. Every
// lookup excludes soft-deleted records.
type UserRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no active record matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID returns domain.ErrUserNotFound when no active record matches.
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// Create assigns the id and returns domain.ErrEmailTaken when an active
	// record already holds the email.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Update merges the patch into the record and returns the result.
	Update(ctx context.Context, id int64, patch UserPatch) (*domain.User, error)
	// List returns all non-deleted users.
	List(ctx context.Context) ([]domain.User, error)
	// SoftDelete hides the record from all subsequent lookups.
	SoftDelete(ctx context.Context, id int64) error
}
