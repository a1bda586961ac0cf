package flags

import (
	"errors"
	"strings"

	"github.com/kennygrant/sanitize"
	"github.com/ummahdev/core/board/content"
	"github.com/ummahdev/core/core/common"
	"github.com/ummahdev/core/core/directory"
	"github.com/ummahdev/core/core/user"
	"github.com/ummahdev/core/modules/acl"
	"gopkg.in/mgo.v2/bson"
)

// ErrQuotaExceeded when the reporter already filed the daily limit.
var ErrQuotaExceeded = errors.New("Can't flag anymore for today")

// File a new pending flag. Repeated reports over the same content are
// allowed.
func File(d deps, r Report) (f Flag, err error) {
	if r.ReporterID == "" {
		return f, common.ErrUnauthenticated
	}
	if strings.TrimSpace(r.ContentID) == "" {
		return f, common.Invalid("content_id", "is required")
	}
	if !content.IsKind(r.ContentType) {
		return f, common.Invalid("content_type", "must be question, answer or comment")
	}
	reason, valid := parseReason(r.Reason)
	if !valid {
		return f, common.Invalid("reason", "unknown reason "+r.Reason)
	}
	description := strings.TrimSpace(sanitize.HTML(r.Description))
	if reason == OTHER && description == "" {
		return f, common.Invalid("description", "is required when reason is other")
	}
	if limit := d.Rules().Flags.DailyLimit; limit > 0 {
		count, err := TodaysCountByUser(d, r.ReporterID)
		if err != nil {
			return f, err
		}
		if count >= limit {
			return f, ErrQuotaExceeded
		}
	}

	t := now()
	f = Flag{
		ID:          common.NewID(),
		ContentID:   r.ContentID,
		ContentType: r.ContentType,
		Reason:      reason,
		Description: description,
		ReporterID:  r.ReporterID,
		Status:      PENDING,
		Created:     t,
		Updated:     t,
	}
	err = d.Directory().Insert("flags", f.ID, f)
	return
}

// Approve a flag and mark the reported content.
func Approve(d deps, id, reviewerID, note string) (Flag, error) {
	return review(d, id, reviewerID, APPROVED, note)
}

// Reject a flag. Content stays untouched.
func Reject(d deps, id, reviewerID, note string) (Flag, error) {
	return review(d, id, reviewerID, REJECTED, note)
}

// The current status is not checked: a flag reviewed twice takes the
// last decision.
func review(d deps, id, reviewerID string, status Status, note string) (Flag, error) {
	f, err := FindId(d, id)
	if err != nil {
		return f, err
	}
	if _, err := user.Authorize(d, reviewerID, acl.ReviewFlags); err != nil {
		return f, err
	}

	t := now()
	changes := bson.M{
		"status":      string(status),
		"reviewer_id": reviewerID,
		"reviewed_at": t,
		"updated_at":  t,
	}
	note = strings.TrimSpace(sanitize.HTML(note))
	if note != "" {
		changes["review_note"] = note
	}
	err = d.Directory().Update("flags", id, changes)
	if err == directory.ErrNotFound {
		return f, ErrFlagNotFound
	}
	if err != nil {
		return f, err
	}
	f.Status = status
	f.ReviewerID = reviewerID
	f.ReviewedAt = &t
	f.Updated = t
	if note != "" {
		f.ReviewNote = note
	}

	if status == APPROVED {
		if _, err := content.MarkFlagged(d, f.ContentType, f.ContentID, string(f.Reason), t); err != nil {
			return f, err
		}
	}
	return f, nil
}

// Resolve deletes the flag for good.
func Resolve(d deps, id, reviewerID string) error {
	if _, err := FindId(d, id); err != nil {
		return err
	}
	if _, err := user.Authorize(d, reviewerID, acl.ReviewFlags); err != nil {
		return err
	}
	err := d.Directory().Remove("flags", id)
	if err == directory.ErrNotFound {
		return ErrFlagNotFound
	}
	return err
}
