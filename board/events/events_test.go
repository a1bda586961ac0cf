package events

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/ummahdev/core/board/flags"
	"github.com/ummahdev/core/core/config"
	"github.com/ummahdev/core/core/directory"
	ev "github.com/ummahdev/core/core/events"
	"github.com/ummahdev/core/modules/acl"
	"gopkg.in/mgo.v2/bson"
)

type testDeps struct {
	store directory.Store
	acl   *acl.Module
	rules config.Rules
}

func (d *testDeps) Directory() directory.Store { return d.store }
func (d *testDeps) ACL() *acl.Module           { return d.acl }
func (d *testDeps) Rules() config.Rules        { return d.rules }

func setup(t *testing.T) *testDeps {
	store, err := directory.OpenLedis(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(store.Close)
	rules := config.Defaults()
	module, err := acl.New(rules.Roles)
	if err != nil {
		t.Fatal(err)
	}
	return &testDeps{store: store, acl: module, rules: rules}
}

func audits(t *testing.T, d *testDeps) []Audit {
	raw, err := d.store.Scan("audits", directory.Query{})
	if err != nil {
		t.Fatal(err)
	}
	list := make([]Audit, len(raw))
	for i := range raw {
		if err := raw[i].Unmarshal(&list[i]); err != nil {
			t.Fatal(err)
		}
	}
	return list
}

func handlerFor(list []ev.EventHandler, name string) ev.Handler {
	for _, h := range list {
		if h.On == name {
			return h.Handler
		}
	}
	return nil
}

func TestAuditHandlers(t *testing.T) {
	Convey("Moderation events are written to the audit log", t, func() {
		d := setup(t)
		list := auditHandlers(d)

		Convey("a review records the resulting status as action", func() {
			h := handlerFor(list, ev.FLAGS_REVIEW)
			So(h, ShouldNotBeNil)
			err := h(ev.FlagReviewed("f1", "approved", ev.UserSign{UserID: "m1", Reason: "confirmed spam"}))
			So(err, ShouldBeNil)

			log := audits(t, d)
			So(log, ShouldHaveLength, 1)
			So(log[0].Related, ShouldEqual, "flag")
			So(log[0].RelatedID, ShouldEqual, "f1")
			So(log[0].Action, ShouldEqual, "approved")
			So(log[0].UserID, ShouldEqual, "m1")
			So(log[0].Reason, ShouldEqual, "confirmed spam")
		})

		Convey("user actions keep their own action name", func() {
			So(handlerFor(list, ev.USERS_BAN)(ev.UserBanned("u2", ev.UserSign{UserID: "m1", Reason: "spam"})), ShouldBeNil)
			So(handlerFor(list, ev.USERS_ROLE)(ev.UserRoleChanged("u2", "moderator", "a1")), ShouldBeNil)

			actions := map[string]bool{}
			for _, a := range audits(t, d) {
				So(a.Related, ShouldEqual, "user")
				actions[a.Action] = true
			}
			So(actions, ShouldResemble, map[string]bool{"ban": true, "role": true})
		})

		Convey("events without an id are refused", func() {
			err := handlerFor(list, ev.FLAGS_RESOLVE)(ev.FlagResolved("", "m1"))
			So(err, ShouldEqual, ErrInvalidIDRef)
			So(audits(t, d), ShouldBeEmpty)
		})
	})
}

func TestFlagHandlers(t *testing.T) {
	Convey("A new flag event resolves its flag", t, func() {
		d := setup(t)
		So(d.store.Insert("users", "u1", bson.M{"role": "user"}), ShouldBeNil)
		f, err := flags.File(d, flags.Report{ContentID: "q1", ContentType: "question", Reason: "spam", ReporterID: "u1"})
		So(err, ShouldBeNil)

		h := handlerFor(flagHandlers(d), ev.FLAGS_NEW)
		So(h(ev.FlagNew(f.ID, "u1", "spam")), ShouldBeNil)
		So(h(ev.FlagNew("missing", "u1", "spam")), ShouldEqual, ErrInvalidIDRef)
	})
}
