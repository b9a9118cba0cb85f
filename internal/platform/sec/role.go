// Copyright (c) 2026 YaMDb. All rights reserved.

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access, including user management
	RoleAdmin UserRole = "admin"

	// Can edit and delete any review or comment
	RoleModerator UserRole = "moderator"

	// Default role for standard registered users
	RoleUser UserRole = "user"
)

// Valid reports whether r is one of the three recognized roles.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleModerator || r == RoleUser
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleModerator:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}

// # Capability Predicates

// IsAdmin reports whether the role (or the independent superuser flag) grants
// admin capability. A superuser is an admin no matter what role the row
// carries, so demoting the role never locks out a bootstrap account.
func IsAdmin(role UserRole, superuser bool) bool {
	return role == RoleAdmin || superuser
}

// IsModerator reports whether the role grants moderation capability.
// Admin does not imply moderator here; call sites check both.
func IsModerator(role UserRole) bool {
	return role == RoleModerator
}

// IsUser reports whether the account carries the default role. Informational
// only; it confers no elevated capability.
func IsUser(role UserRole) bool {
	return role == RoleUser
}
