package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" Auditor ")
	assert.True(t, ok)
	assert.Equal(t, RoleAuditor, r)

	_, ok = ParseRole("superuser")
	assert.False(t, ok)
}

func TestRolesFromStrings(t *testing.T) {
	roles := RolesFromStrings([]string{"end-user", "bogus", "auditor", "end-user"})
	assert.Equal(t, Roles{RoleEndUser, RoleAuditor}, roles)
	assert.True(t, roles.Has(RoleAuditor))
	assert.False(t, roles.Has(RoleAdmin))
	assert.Equal(t, []string{"end-user", "auditor"}, roles.Strings())
}
