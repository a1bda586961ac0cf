package user

import (
	"github.com/ummahdev/core/core/common"
)

// Authorize loads the caller and checks permission against its current
// role. Roles are never cached since they can change between requests.
func Authorize(d deps, callerID, permission string) (User, error) {
	if callerID == "" {
		return User{}, common.ErrUnauthenticated
	}
	usr, err := FindId(d, callerID)
	if err == UserNotFound {
		return usr, common.ErrPermissionDenied
	}
	if err != nil {
		return usr, err
	}
	if !d.ACL().Can(string(usr.Role()), permission) {
		return usr, common.ErrPermissionDenied
	}
	return usr, nil
}

// NotSelf refuses moderating actions where the caller is also the target.
func NotSelf(callerID, targetID string) error {
	if callerID == "" {
		return common.ErrUnauthenticated
	}
	if callerID == targetID {
		return common.ErrSelfAction
	}
	return nil
}
