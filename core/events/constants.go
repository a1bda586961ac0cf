package events

const (
	FLAGS_NEW     = "flags:new"
	FLAGS_REVIEW  = "flags:review"
	FLAGS_RESOLVE = "flags:resolve"

	USERS_BAN   = "users:ban"
	USERS_UNBAN = "users:unban"
	USERS_ROLE  = "users:role"
)
