package handler

import (
	"github.com/tecnorev/commerce-api/internal/core/domain"
	"github.com/tecnorev/commerce-api/internal/core/ports"
)

type registerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required,min=2,max=100"`
	LastName  string `json:"last_name" validate:"required,min=2,max=100"`
	Phone     int64  `json:"phone" validate:"required"`
	Role      string `json:"role,omitempty"`
	BranchID  *int64 `json:"branch_id,omitempty"`
}

// createUserRequest is the admin variant: role is mandatory and the active
// flag may be set explicitly.
type createUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required,min=2,max=100"`
	LastName  string `json:"last_name" validate:"required,min=2,max=100"`
	Phone     int64  `json:"phone" validate:"required"`
	Role      string `json:"role" validate:"required"`
	BranchID  *int64 `json:"branch_id,omitempty"`
	IsActive  *bool  `json:"is_active,omitempty"`
}

// tokenRequest accepts both JSON and OAuth2-style form bodies; "username"
// is an alias for the email, kept for password-flow clients.
type tokenRequest struct {
	Email    string `json:"email" form:"email"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password" validate:"required"`
}

func (r tokenRequest) subject() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

// updateUserRequest is a presence-based partial update: absent fields stay
// untouched.
type updateUserRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"first_name" validate:"omitempty,min=2,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,min=2,max=100"`
	Phone     *int64  `json:"phone"`
	Password  *string `json:"password" validate:"omitempty,min=8"`
	IsActive  *bool   `json:"is_active"`
	Role      *string `json:"role"`
	BranchID  *int64  `json:"branch_id"`
}

// privileged reports whether the request touches fields only SUPER_ADMIN may
// change on another's (or their own) account.
func (r updateUserRequest) privileged() bool {
	return r.IsActive != nil || r.Role != nil || r.BranchID != nil
}

// toInput converts the request, validating any role identifier against the
// closed set.
func (r updateUserRequest) toInput() (ports.UpdateUserInput, error) {
	in := ports.UpdateUserInput{
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Password:  r.Password,
		IsActive:  r.IsActive,
		BranchID:  r.BranchID,
	}
	if r.Role != nil {
		role, err := domain.ParseRole(*r.Role)
		if err != nil {
			return ports.UpdateUserInput{}, err
		}
		in.Role = &role
	}
	return in, nil
}

type roleResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
