package domain

// Rule is a pure access predicate evaluated against a resolved user.
type Rule func(u *User) bool

// RoleIn grants when the user's role is one of the given roles. Membership is
// literal: SUPER_ADMIN passes only when the set includes it.
func RoleIn(roles ...Role) Rule {
	allowed := make(map[Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(u *User) bool {
		_, ok := allowed[u.Role]
		return ok
	}
}

// OwnedBy grants when the user is the resource owner. SUPER_ADMIN bypasses
// ownership unconditionally.
func OwnedBy(ownerID int64) Rule {
	return func(u *User) bool {
		if u.Role == RoleSuperAdmin {
			return true
		}
		return u.ID == ownerID
	}
}

// BranchScope grants when the user is assigned to the given branch.
// SUPER_ADMIN bypasses branch scoping; a user without a branch assignment is
// always denied (never treated as matching "no branch").
func BranchScope(branchID int64) Rule {
	return func(u *User) bool {
		if u.Role == RoleSuperAdmin {
			return true
		}
		if u.BranchID == nil {
			return false
		}
		return *u.BranchID == branchID
	}
}

// AnyOf grants when any sub-rule grants.
func AnyOf(rules ...Rule) Rule {
	return func(u *User) bool {
		for _, r := range rules {
			if r(u) {
				return true
			}
		}
		return false
	}
}

// Authorize evaluates a rule against a user and returns ErrForbidden on
// denial. Inactive users are denied regardless of the rule.
func Authorize(u *User, rule Rule) error {
	if u == nil || !u.IsActive {
		return ErrForbidden
	}
	if !rule(u) {
		return ErrForbidden
	}
	return nil
}
