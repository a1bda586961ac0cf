package events

import (
	"errors"
	"time"

	"github.com/ummahdev/core/core/common"
	ev "github.com/ummahdev/core/core/events"
)

// ErrInvalidIDRef for events with an id.
var ErrInvalidIDRef = errors.New("invalid id reference. could not find related object")

type Audit struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Related   string    `bson:"related" json:"related"`
	RelatedID string    `bson:"related_id" json:"related_id"`
	Reason    string    `bson:"reason" json:"reason"`
	Action    string    `bson:"action" json:"action"`
	Created   time.Time `bson:"created_at" json:"created_at"`
}

// Audit action log.
func audit(d deps, related, id, action string, u ev.UserSign) error {
	if id == "" {
		return ErrInvalidIDRef
	}
	m := Audit{
		ID:        common.NewID(),
		UserID:    u.UserID,
		Related:   related,
		RelatedID: id,
		Reason:    u.Reason,
		Action:    action,
		Created:   time.Now(),
	}
	return d.Directory().Insert("audits", m.ID, m)
}

func auditOf(d deps, related, action string) ev.Handler {
	return func(e ev.Event) error {
		var sign ev.UserSign
		if e.Sign != nil {
			sign = *e.Sign
		}
		a := action
		if status, ok := e.Params["status"].(string); ok && status != "" {
			a = status
		}
		return audit(d, related, e.ID(), a, sign)
	}
}

func auditHandlers(d deps) []ev.EventHandler {
	return []ev.EventHandler{
		{On: ev.FLAGS_NEW, Handler: auditOf(d, "flag", "new")},
		{On: ev.FLAGS_REVIEW, Handler: auditOf(d, "flag", "review")},
		{On: ev.FLAGS_RESOLVE, Handler: auditOf(d, "flag", "resolve")},
		{On: ev.USERS_BAN, Handler: auditOf(d, "user", "ban")},
		{On: ev.USERS_UNBAN, Handler: auditOf(d, "user", "unban")},
		{On: ev.USERS_ROLE, Handler: auditOf(d, "user", "role")},
	}
}
