package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tecnorev/commerce-api/internal/core/domain"
	"github.com/tecnorev/commerce-api/internal/core/ports"
)

// UserService implements profile and admin user management.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// Update applies a partial update: only supplied fields change. A supplied
// plaintext password is hashed here, so the repository only ever sees the
// digest.
func (s *UserService) Update(ctx context.Context, id int64, in ports.UpdateUserInput) (*domain.User, error) {
	patch := ports.UserPatch{
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		IsActive:  in.IsActive,
		Role:      in.Role,
		BranchID:  in.BranchID,
	}

	if in.Password != nil && *in.Password != "" {
		hash, err := HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", id).Msg("user updated")
	return updated, nil
}

// Delete soft-deletes a user. The record survives but disappears from every
// lookup, which invalidates outstanding tokens at resolution time.
func (s *UserService) Delete(ctx context.Context, id, actorID int64) error {
	if id == actorID {
		return domain.ErrSelfDelete
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("user_id", id).Int64("actor_id", actorID).Msg("user soft-deleted")
	return nil
}
