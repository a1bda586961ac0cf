// Package acl grants permissions to roles. Roles inherit the permissions of
// their parents.
package acl

import (
	"sync"

	"github.com/mikespook/gorbac"
	"github.com/ummahdev/core/core/config"
)

// Permissions checked across the application.
const (
	FileFlags   = "flags:file"
	ReviewFlags = "flags:review"
	ListFlags   = "flags:list"
	ListUsers   = "users:list"
	BanUsers    = "users:ban"
	ChangeRoles = "users:role"
)

type Module struct {
	mu          sync.RWMutex
	rbac        *gorbac.RBAC
	rules       map[string]config.RoleRule
	permissions map[string]gorbac.Permission
}

// New builds the permission graph from role rules.
func New(rules map[string]config.RoleRule) (*Module, error) {
	module := &Module{}
	if err := module.Reload(rules); err != nil {
		return nil, err
	}
	return module, nil
}

// Reload replaces the permission graph; on error the previous one stays.
func (module *Module) Reload(rules map[string]config.RoleRule) error {
	rbac := gorbac.New()
	permissions := make(map[string]gorbac.Permission)

	for name, rule := range rules {
		role := gorbac.NewStdRole(name)
		for _, p := range rule.Permissions {
			if _, exists := permissions[p]; !exists {
				permissions[p] = gorbac.NewStdPermission(p)
			}
			if err := role.Assign(permissions[p]); err != nil {
				return err
			}
		}
		if err := rbac.Add(role); err != nil {
			return err
		}
	}
	for name, rule := range rules {
		if len(rule.Inherits) > 0 {
			if err := rbac.SetParents(name, rule.Inherits); err != nil {
				return err
			}
		}
	}

	module.mu.Lock()
	module.rbac = rbac
	module.rules = rules
	module.permissions = permissions
	module.mu.Unlock()
	return nil
}

// Can reports whether role is granted permission.
func (module *Module) Can(role, permission string) bool {
	module.mu.RLock()
	defer module.mu.RUnlock()
	p, exists := module.permissions[permission]
	if !exists {
		return false
	}
	return module.rbac.IsGranted(role, p, nil)
}

// Known role.
func (module *Module) Known(role string) bool {
	module.mu.RLock()
	defer module.mu.RUnlock()
	_, exists := module.rules[role]
	return exists
}
