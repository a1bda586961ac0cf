// Package content records moderation metadata on questions, answers and
// comments. Marked content is never hidden or removed here.
package content

import (
	"time"

	"github.com/ummahdev/core/core/common"
	"github.com/ummahdev/core/core/directory"
	"gopkg.in/mgo.v2/bson"
)

// Kinds of content that can be reported.
const (
	QUESTION = "question"
	ANSWER   = "answer"
	COMMENT  = "comment"
)

// Marker fields present on content flagged by a reviewer.
type Marker struct {
	Flagged    bool       `bson:"is_flagged" json:"is_flagged"`
	FlaggedAt  *time.Time `bson:"flagged_at,omitempty" json:"flagged_at,omitempty"`
	FlagReason string     `bson:"flag_reason,omitempty" json:"flag_reason,omitempty"`
}

// IsKind reports whether kind names a reportable content type.
func IsKind(kind string) bool {
	switch kind {
	case QUESTION, ANSWER, COMMENT:
		return true
	}
	return false
}

// Collection holding content of kind.
func Collection(kind string) string {
	return kind + "s"
}

// MarkFlagged sets the flag marker on the content document. Content that no
// longer exists is skipped and reported as not marked.
func MarkFlagged(d deps, kind, id, reason string, at time.Time) (bool, error) {
	if !IsKind(kind) {
		return false, common.Invalid("content_type", "unknown content type "+kind)
	}
	coll := Collection(kind)
	var current bson.M
	err := d.Directory().FindId(coll, id, &current)
	if err == directory.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	err = d.Directory().Update(coll, id, bson.M{
		"is_flagged":  true,
		"flagged_at":  at,
		"flag_reason": reason,
	})
	if err == directory.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

// FindMarker reads the marker of a content document.
func FindMarker(d deps, kind, id string) (m Marker, err error) {
	err = d.Directory().FindId(Collection(kind), id, &m)
	return
}
