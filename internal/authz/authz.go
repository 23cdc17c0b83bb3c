// Package authz is the access decision table: every handler asks the same
// pure functions instead of carrying its own role checks.
package authz

import "github.com/steelhall-dev/steelhall/internal/middleware"

// CanAccessHall reports whether the caller may view, update, delete or
// recalculate a hall owned by ownerID. Admins may act on any hall; everyone
// else only on their own. A hall with no owner is admin-only.
func CanAccessHall(caller middleware.AuthenticatedUser, ownerID *uint) bool {
	if caller.IsAdmin {
		return true
	}
	return ownerID != nil && *ownerID == caller.ID
}

// CanAccessUser reports whether the caller may view or delete the user
// account with targetID.
func CanAccessUser(caller middleware.AuthenticatedUser, targetID uint) bool {
	return caller.IsAdmin || caller.ID == targetID
}

// CanChangePassword reports whether the caller may change the password of
// targetID. Password changes are strictly self-service: an admin cannot
// rotate someone else's password through this surface because the old
// password must be verified.
func CanChangePassword(caller middleware.AuthenticatedUser, targetID uint) bool {
	return caller.ID == targetID
}

// CanListUsers reports whether the caller may enumerate accounts.
func CanListUsers(caller middleware.AuthenticatedUser) bool {
	return caller.IsAdmin
}
