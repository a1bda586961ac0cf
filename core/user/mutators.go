package user

import (
	"strings"
	"time"

	"github.com/goware/emailx"
	"github.com/kennygrant/sanitize"
	"github.com/ummahdev/core/core/common"
	"github.com/ummahdev/core/modules/acl"
	"github.com/ummahdev/core/modules/helpers"
	"gopkg.in/mgo.v2/bson"
)

// Upsert creates the profile or merges the given fields into an existing one.
func Upsert(d deps, usr User) (User, error) {
	if usr.ID == "" {
		return usr, common.Invalid("id", "is required")
	}
	usr.Email = emailx.Normalize(usr.Email)
	if err := emailx.ValidateFast(usr.Email); err != nil {
		return usr, common.Invalid("email", err.Error())
	}
	if usr.RoleName == "" {
		usr.RoleName = string(RoleUser)
	}
	if _, ok := ParseRole(usr.RoleName); !ok {
		return usr, common.Invalid("role", "unknown role "+usr.RoleName)
	}

	existing, err := FindId(d, usr.ID)
	if err != nil && err != UserNotFound {
		return usr, err
	}
	found := err == nil
	if found {
		if usr.DisplayName == "" {
			usr.DisplayName = existing.DisplayName
		}
		if usr.UserName == "" {
			usr.UserName = existing.UserName
		}
	}
	if usr.DisplayName == "" {
		usr.DisplayName = strings.Split(usr.Email, "@")[0]
	}
	if usr.UserName == "" {
		usr.UserName = strings.Replace(helpers.StrSlug(usr.DisplayName), "-", "", -1)
	}
	if usr.UserName == "" {
		usr.UserName = "user" + helpers.Truncate(usr.ID, 6)
	}

	if !found {
		usr.Created = now()
		usr.Updated = usr.Created
		if err := d.Directory().Insert("users", usr.ID, usr); err != nil {
			return usr, err
		}
		return usr, nil
	}
	err = d.Directory().Update("users", usr.ID, bson.M{
		"email":        usr.Email,
		"display_name": usr.DisplayName,
		"username":     usr.UserName,
		"role":         usr.RoleName,
		"updated_at":   now(),
	})
	if err != nil {
		return usr, err
	}
	return FindId(d, usr.ID)
}

// ChangeRole of target. Only callers granted users:role may do it and never
// over their own account.
func ChangeRole(d deps, callerID, targetID string, role string) (User, error) {
	if err := NotSelf(callerID, targetID); err != nil {
		return User{}, err
	}
	if _, err := Authorize(d, callerID, acl.ChangeRoles); err != nil {
		return User{}, err
	}
	r, ok := ParseRole(role)
	if !ok || !d.ACL().Known(string(r)) {
		return User{}, common.Invalid("role", "unknown role "+role)
	}
	target, err := FindId(d, targetID)
	if err != nil {
		return target, err
	}
	t := now()
	err = d.Directory().Update("users", targetID, bson.M{
		"role":       string(r),
		"updated_at": t,
	})
	if err != nil {
		return target, err
	}
	target.RoleName = string(r)
	target.Updated = t
	return target, nil
}

// Ban target for the duration computed by the ban rule.
func Ban(d deps, callerID, targetID, reason string) (User, error) {
	if err := NotSelf(callerID, targetID); err != nil {
		return User{}, err
	}
	if _, err := Authorize(d, callerID, acl.BanUsers); err != nil {
		return User{}, err
	}
	target, err := FindId(d, targetID)
	if err != nil {
		return target, err
	}
	effects, err := d.Rules().Ban.Effects(target.BannedTimes)
	if err != nil {
		return target, err
	}
	t := now()
	until := t.Add(time.Minute * time.Duration(effects.Duration))
	reason = strings.TrimSpace(sanitize.HTML(reason))
	err = d.Directory().Update("users", targetID, bson.M{
		"is_banned":    true,
		"ban_reason":   reason,
		"banned_at":    t,
		"banned_until": until,
		"banned_times": target.BannedTimes + 1,
		"updated_at":   t,
	})
	if err != nil {
		return target, err
	}
	target.Banned = true
	target.BanReason = reason
	target.BannedAt = &t
	target.BannedUntil = &until
	target.BannedTimes++
	target.Updated = t
	return target, nil
}

// Unban target, lifting any remaining ban time.
func Unban(d deps, callerID, targetID string) (User, error) {
	if err := NotSelf(callerID, targetID); err != nil {
		return User{}, err
	}
	if _, err := Authorize(d, callerID, acl.BanUsers); err != nil {
		return User{}, err
	}
	target, err := FindId(d, targetID)
	if err != nil {
		return target, err
	}
	t := now()
	err = d.Directory().Update("users", targetID, bson.M{
		"is_banned":    false,
		"banned_until": nil,
		"updated_at":   t,
	})
	if err != nil {
		return target, err
	}
	target.Banned = false
	target.BannedUntil = nil
	target.Updated = t
	return target, nil
}
