package dal

import (
	"github.com/ummahdev/core/core/config"
	"github.com/ummahdev/core/core/directory"
	"github.com/ummahdev/core/core/user"
	"github.com/ummahdev/core/modules/acl"
)

type deps interface {
	Directory() directory.Store
	ACL() *acl.Module
	Rules() config.Rules
}

// SeedAdmin creates the administrator account, or promotes an existing
// profile with the same id.
func SeedAdmin(d deps, id, email, name string) (user.User, error) {
	return user.Upsert(d, user.User{
		ID:          id,
		Email:       email,
		DisplayName: name,
		RoleName:    string(user.RoleAdmin),
	})
}
