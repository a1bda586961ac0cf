package user

import (
	"time"
)

// Role controls authorization for reviewer actions.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Roles known to the application.
var Roles = []Role{RoleUser, RoleModerator, RoleAdmin}

// ParseRole validates a role name.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

type User struct {
	ID          string     `bson:"_id" json:"id"`
	Email       string     `bson:"email" json:"email,omitempty"`
	DisplayName string     `bson:"display_name" json:"display_name"`
	UserName    string     `bson:"username" json:"username"`
	PhotoURL    string     `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	Reputation  int        `bson:"reputation" json:"reputation"`
	RoleName    string     `bson:"role" json:"role"`
	Banned      bool       `bson:"is_banned" json:"is_banned"`
	BanReason   string     `bson:"ban_reason,omitempty" json:"ban_reason,omitempty"`
	BannedAt    *time.Time `bson:"banned_at,omitempty" json:"banned_at,omitempty"`
	BannedUntil *time.Time `bson:"banned_until,omitempty" json:"banned_until,omitempty"`
	BannedTimes int        `bson:"banned_times" json:"-"`
	Created     time.Time  `bson:"created_at" json:"created_at"`
	Updated     time.Time  `bson:"updated_at" json:"updated_at"`
}

// Role stored for the user; anything unknown is a plain user.
func (u User) Role() Role {
	if r, ok := ParseRole(u.RoleName); ok {
		return r
	}
	return RoleUser
}

// Page of users, newest first.
type Page struct {
	Items []User `json:"items"`
	Next  string `json:"next,omitempty"`
}
