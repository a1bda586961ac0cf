package content

import (
	"github.com/ummahdev/core/core/directory"
)

type deps interface {
	Directory() directory.Store
}
