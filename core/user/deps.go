package user

import (
	"time"

	"github.com/ummahdev/core/core/config"
	"github.com/ummahdev/core/core/directory"
	"github.com/ummahdev/core/modules/acl"
)

type deps interface {
	Directory() directory.Store
	ACL() *acl.Module
	Rules() config.Rules
}

// Overridden by tests.
var now = time.Now
