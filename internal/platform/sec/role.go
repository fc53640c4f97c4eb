// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
//
// Note that the role is distinct from an account's artist verification
// status: a user becomes RoleArtist only once their verification request
// has been approved by an admin.
type UserRole string

const (
	// Unrestricted system access: moderation queues, payouts, audit log
	RoleAdmin UserRole = "admin"

	// Can author and manage their own songs and albums
	RoleArtist UserRole = "artist"

	// Default role for standard registered listeners
	RoleMember UserRole = "member"
)

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
	case RoleArtist:
		return 20
	case RoleMember:
		return 10
	default:
		return 0
	}
}
