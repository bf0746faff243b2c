// internal/pkg/authz/authz.go
//
// Single place for role checks. Handlers ask for a capability instead of
// comparing role strings inline on every screen.
package authz

import "github.com/careshare/csh_backendl/internal/models"

// CanReviewShifts reports whether the role may approve or reject
// pending shifts.
func CanReviewShifts(role string) bool {
	return role == models.RoleAdmin || role == models.RoleSuperAdmin
}

// CanManageCenters reports whether the role may create, edit or delete
// geofenced centers.
func CanManageCenters(role string) bool {
	return role == models.RoleSuperAdmin
}

// CanManageUsers reports whether the role may approve volunteers,
// change roles or delete accounts.
func CanManageUsers(role string) bool {
	return role == models.RoleSuperAdmin
}

// CanManageDependents reports whether the role may create and list
// dependent volunteer records.
func CanManageDependents(role string) bool {
	return role == models.RoleParent || role == models.RoleAdmin || role == models.RoleSuperAdmin
}

// CanViewLiveMap reports whether the role may see live volunteer
// positions and geofence events.
func CanViewLiveMap(role string) bool {
	return role == models.RoleAdmin || role == models.RoleSuperAdmin
}
