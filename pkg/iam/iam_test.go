package iam

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAccess(t *testing.T) {
	tests := []struct {
		role Role
		view View
		want bool
	}{
		{RoleRecruiter, ViewPipeline, true},
		{RoleRecruiter, ViewFormation, true},
		{RoleRecruiter, ViewTeam, false},
		{RoleRecruiter, ViewPlanning, false},

		{RoleManager, ViewTeam, true},
		{RoleManager, ViewFormation, true},
		{RoleManager, ViewPlanning, true},
		{RoleManager, ViewPipeline, false},

		{RoleWorker, ViewPlanning, true},
		{RoleWorker, ViewPipeline, false},
		{RoleWorker, ViewTeam, false},

		{RoleAdmin, ViewPipeline, true},
		{RoleAdmin, ViewTeam, true},
		{RoleAdmin, ViewFormation, true},
		{RoleAdmin, ViewPlanning, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanAccess(tt.role, tt.view),
			"role %s view %s", tt.role, tt.view)
	}
}

func TestUnknownRoleHasNoAccess(t *testing.T) {
	for _, v := range []View{ViewPipeline, ViewTeam, ViewFormation, ViewPlanning} {
		assert.False(t, CanAccess(Role("GUEST"), v))
	}
}

func TestRoleIsValid(t *testing.T) {
	assert.True(t, RoleRecruiter.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, Role("SUPERUSER").IsValid())
	assert.False(t, Role("").IsValid())
}
