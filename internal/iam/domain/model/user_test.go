package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_AllPermissions_UnionOfDirectAndRoles(t *testing.T) {
	u := User{
		Permissions: []Permission{{Codename: "p1"}},
		Roles: []Role{
			{Name: "editor", Permissions: []Permission{{Codename: "p2"}, {Codename: "p3"}}},
			{Name: "viewer", Permissions: []Permission{{Codename: "p1"}, {Codename: "p3"}}},
		},
	}

	assert.Equal(t, []string{"p1", "p2", "p3"}, u.AllPermissions())
	assert.Equal(t, []string{"editor", "viewer"}, u.RoleNames())
}

func TestUser_AllPermissions_Empty(t *testing.T) {
	perms := User{}.AllPermissions()
	assert.NotNil(t, perms)
	assert.Empty(t, perms)
}

func TestUser_OptionalFields(t *testing.T) {
	email := "a@x.com"
	u := User{Email: &email, System: &System{Code: "t1"}}

	assert.Equal(t, "a@x.com", u.EmailValue())
	assert.Equal(t, "", u.PhoneValue())
	assert.Equal(t, "t1", u.SystemCode())
	assert.Equal(t, "", User{}.SystemCode())
}
