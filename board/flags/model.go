package flags

import (
	"fmt"
	"time"

	"github.com/ummahdev/core/board/content"
)

type Status string

const (
	PENDING  Status = "pending"
	APPROVED Status = "approved"
	REJECTED Status = "rejected"
	// Never persisted: resolved flags are deleted.
	RESOLVED Status = "resolved"
)

// Statuses a flag can be listed by.
var Statuses = []Status{PENDING, APPROVED, REJECTED, RESOLVED}

type Reason string

const (
	SPAM              Reason = "spam"
	RUDE_OR_ABUSIVE   Reason = "rude_or_abusive"
	LOW_QUALITY       Reason = "low_quality"
	OFF_TOPIC         Reason = "off_topic"
	NEEDS_IMPROVEMENT Reason = "needs_improvement"
	PLAGIARISM        Reason = "plagiarism"
	OTHER             Reason = "other"
)

var Reasons = []Reason{SPAM, RUDE_OR_ABUSIVE, LOW_QUALITY, OFF_TOPIC, NEEDS_IMPROVEMENT, PLAGIARISM, OTHER}

// Flag represents a report sent by a user flagging a question, answer or
// comment. Only status and reviewer fields change after creation.
type Flag struct {
	ID          string     `bson:"_id" json:"id"`
	ContentID   string     `bson:"content_id" json:"content_id"`
	ContentType string     `bson:"content_type" json:"content_type"`
	Reason      Reason     `bson:"reason" json:"reason"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
	ReporterID  string     `bson:"reporter_id" json:"reporter_id"`
	Status      Status     `bson:"status" json:"status"`
	ReviewerID  string     `bson:"reviewer_id,omitempty" json:"reviewer_id,omitempty"`
	ReviewNote  string     `bson:"review_note,omitempty" json:"review_note,omitempty"`
	ReviewedAt  *time.Time `bson:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`
	Created     time.Time  `bson:"created_at" json:"created_at"`
	Updated     time.Time  `bson:"updated_at" json:"updated_at"`
}

// Report is what a reporter submits.
type Report struct {
	ContentID   string
	ContentType string
	Reason      string
	Description string
	ReporterID  string
}

// Page of flags, newest first. Next is the cursor for the following page.
type Page struct {
	Items []Flag `json:"items"`
	Next  string `json:"next,omitempty"`
}

// check the enumerated fields of a decoded flag. Resolved flags are deleted,
// so a stored resolved status is broken too.
func (f Flag) check() error {
	if st, valid := parseStatus(string(f.Status)); !valid || st == RESOLVED {
		return fmt.Errorf("flag %s has unknown status %q", f.ID, f.Status)
	}
	if _, valid := parseReason(string(f.Reason)); !valid {
		return fmt.Errorf("flag %s has unknown reason %q", f.ID, f.Reason)
	}
	if !content.IsKind(f.ContentType) {
		return fmt.Errorf("flag %s has unknown content type %q", f.ID, f.ContentType)
	}
	return nil
}

func parseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

func parseReason(s string) (Reason, bool) {
	for _, r := range Reasons {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}
