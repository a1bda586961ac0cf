package user

import (
	"errors"

	"github.com/ummahdev/core/core/common"
	"github.com/ummahdev/core/core/directory"
)

var UserNotFound = errors.New("User has not been found by given criteria.")

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

func FindId(d deps, id string) (user User, err error) {
	err = d.Directory().FindId("users", id, &user)
	if err == directory.ErrNotFound {
		return user, UserNotFound
	}
	return
}

// GetRole re-reads the role of id from the store on every call.
func GetRole(d deps, id string) (Role, error) {
	usr, err := FindId(d, id)
	if err != nil {
		return "", err
	}
	return usr.Role(), nil
}

// List users newest first, resuming after cursor.
func List(d deps, cursor string, limit int) (page Page, err error) {
	after, err := directory.DecodeCursor(cursor)
	if err != nil {
		return
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	list, err := d.Directory().Scan("users", directory.Query{After: after, Limit: limit})
	if err != nil {
		return
	}
	page.Items = make([]User, 0, len(list))
	for _, raw := range list {
		var usr User
		if err = raw.Unmarshal(&usr); err != nil {
			err = &common.LookupFailed{Op: "decode users", Err: err}
			return
		}
		page.Items = append(page.Items, usr)
	}
	if n := len(page.Items); n == limit {
		last := page.Items[n-1]
		page.Next = directory.CursorOf(last.Created, last.ID).Encode()
	}
	return
}
