package domain

import "time"

// Role is a named capability bucket. The set is closed: exactly five roles
// exist and unknown identifiers are rejected at every boundary.
type Role string

const (
	// RoleSuperAdmin is the owner role: sees all branches and finances.
	RoleSuperAdmin Role = "SUPER_ADMIN"
	// RoleBranchManager controls their own branch and its stock.
	RoleBranchManager Role = "BRANCH_MANAGER"
	// RoleSalesAgent sells at the POS and attends the counter.
	RoleSalesAgent Role = "SALES_AGENT"
	// RoleLogistics prepares and ships packages.
	RoleLogistics Role = "LOGISTICS"
	// RoleCustomer is a web buyer: only sees their own orders.
	RoleCustomer Role = "CUSTOMER"
)

// AllRoles lists every valid role, highest privilege first.
func AllRoles() []Role {
	return []Role{RoleSuperAdmin, RoleBranchManager, RoleSalesAgent, RoleLogistics, RoleCustomer}
}

// ParseRole validates an external role identifier against the closed set.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	switch r {
	case RoleSuperAdmin, RoleBranchManager, RoleSalesAgent, RoleLogistics, RoleCustomer:
		return r, nil
	}
	return "", ErrUnknownRole
}

// User models an authenticatable principal. The password hash is excluded
// from every JSON projection; the soft-delete flag is internal only.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        int64     `json:"phone"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	Role         Role      `json:"role"`
	BranchID     *int64    `json:"branch_id"`
	IsDeleted    bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
