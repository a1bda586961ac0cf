package content

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/ummahdev/core/core/common"
	"github.com/ummahdev/core/core/directory"
	"gopkg.in/mgo.v2/bson"
)

type testDeps struct {
	store directory.Store
}

func (d testDeps) Directory() directory.Store {
	return d.store
}

func TestMarkFlagged(t *testing.T) {
	Convey("Given a store with one answer", t, func() {
		store, err := directory.OpenLedis(t.TempDir())
		So(err, ShouldBeNil)
		defer store.Close()
		d := testDeps{store}

		err = store.Insert("answers", "a1", bson.M{"body": "use a map", "created_at": time.Now()})
		So(err, ShouldBeNil)

		Convey("marking it records reason and time", func() {
			at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
			marked, err := MarkFlagged(d, ANSWER, "a1", "spam", at)
			So(err, ShouldBeNil)
			So(marked, ShouldBeTrue)

			m, err := FindMarker(d, ANSWER, "a1")
			So(err, ShouldBeNil)
			So(m.Flagged, ShouldBeTrue)
			So(m.FlagReason, ShouldEqual, "spam")
			So(m.FlaggedAt.Equal(at), ShouldBeTrue)

			var doc bson.M
			So(store.FindId("answers", "a1", &doc), ShouldBeNil)
			So(doc["body"], ShouldEqual, "use a map")
		})

		Convey("missing content is skipped without error", func() {
			marked, err := MarkFlagged(d, QUESTION, "gone", "spam", time.Now())
			So(err, ShouldBeNil)
			So(marked, ShouldBeFalse)
		})

		Convey("unknown kinds are rejected", func() {
			_, err := MarkFlagged(d, "user", "a1", "spam", time.Now())
			So(common.IsValidation(err), ShouldBeTrue)
		})
	})
}
