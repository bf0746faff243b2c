package authz

import (
	"testing"

	"github.com/careshare/csh_backendl/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCapabilitiesByRole(t *testing.T) {
	cases := []struct {
		role             string
		reviewShifts     bool
		manageCenters    bool
		manageUsers      bool
		manageDependents bool
		viewLiveMap      bool
	}{
		{models.RoleVolunteer, false, false, false, false, false},
		{models.RoleParent, false, false, false, true, false},
		{models.RoleAdmin, true, false, false, true, true},
		{models.RoleSuperAdmin, true, true, true, true, true},
		{"", false, false, false, false, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.reviewShifts, CanReviewShifts(tc.role), "CanReviewShifts(%q)", tc.role)
		assert.Equal(t, tc.manageCenters, CanManageCenters(tc.role), "CanManageCenters(%q)", tc.role)
		assert.Equal(t, tc.manageUsers, CanManageUsers(tc.role), "CanManageUsers(%q)", tc.role)
		assert.Equal(t, tc.manageDependents, CanManageDependents(tc.role), "CanManageDependents(%q)", tc.role)
		assert.Equal(t, tc.viewLiveMap, CanViewLiveMap(tc.role), "CanViewLiveMap(%q)", tc.role)
	}
}
