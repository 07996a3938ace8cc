package ports

import (
	"context"

	"github.com/tecnorev/commerce-api/internal/core/domain"
)

// UpdateUserInput is the service-level partial update. Unlike UserPatch it
// may carry a plaintext password, which the service hashes before the patch
// ever reaches the repository.
type UpdateUserInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Phone     *int64
	Password  *string
	IsActive  *bool
	Role      *domain.Role
	BranchID  *int64
}

// UserService implements profile and admin user management on top of the
// user repository.
type UserService interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, in UpdateUserInput) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	// Delete soft-deletes a user. Deleting your own account is rejected with
	// domain.ErrSelfDelete.
	Delete(ctx context.Context, id, actorID int64) error
}
