package user

import (
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/ummahdev/core/core/common"
	"github.com/ummahdev/core/core/config"
	"github.com/ummahdev/core/core/directory"
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

var base = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

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
	now = func() time.Time { return base }
	t.Cleanup(func() { now = time.Now })

	users := []User{
		{ID: "u1", RoleName: "user", Created: base.Add(1 * time.Minute)},
		{ID: "u2", RoleName: "user", Created: base.Add(2 * time.Minute)},
		{ID: "m1", RoleName: "moderator", Created: base.Add(3 * time.Minute)},
		{ID: "a1", RoleName: "admin", Created: base.Add(4 * time.Minute)},
		{ID: "x1", RoleName: "superuser", Created: base.Add(5 * time.Minute)},
	}
	for _, u := range users {
		if err := store.Insert("users", u.ID, u); err != nil {
			t.Fatal(err)
		}
	}
	return &testDeps{store: store, acl: module, rules: rules}
}

func TestGetRole(t *testing.T) {
	Convey("Resolving roles", t, func() {
		d := setup(t)

		var tests = []struct {
			id   string
			role Role
		}{
			{"u1", RoleUser},
			{"m1", RoleModerator},
			{"a1", RoleAdmin},
			{"x1", RoleUser},
		}
		for _, test := range tests {
			role, err := GetRole(d, test.id)
			So(err, ShouldBeNil)
			So(role, ShouldEqual, test.role)
		}

		_, err := GetRole(d, "nobody")
		So(err, ShouldEqual, UserNotFound)
	})
}

func TestChangeRole(t *testing.T) {
	Convey("Changing roles", t, func() {
		d := setup(t)

		Convey("an admin promotes a user", func() {
			usr, err := ChangeRole(d, "a1", "u1", "moderator")
			So(err, ShouldBeNil)
			So(usr.Role(), ShouldEqual, RoleModerator)

			role, err := GetRole(d, "u1")
			So(err, ShouldBeNil)
			So(role, ShouldEqual, RoleModerator)
		})

		Convey("nobody changes their own role", func() {
			_, err := ChangeRole(d, "a1", "a1", "user")
			So(err, ShouldEqual, common.ErrSelfAction)
			role, _ := GetRole(d, "a1")
			So(role, ShouldEqual, RoleAdmin)
		})

		Convey("moderators are not allowed", func() {
			_, err := ChangeRole(d, "m1", "u1", "admin")
			So(err, ShouldEqual, common.ErrPermissionDenied)
		})

		Convey("unknown roles and targets fail", func() {
			_, err := ChangeRole(d, "a1", "u1", "root")
			So(common.IsValidation(err), ShouldBeTrue)
			_, err = ChangeRole(d, "a1", "nobody", "user")
			So(err, ShouldEqual, UserNotFound)
		})

		Convey("anonymous callers are unauthenticated", func() {
			_, err := ChangeRole(d, "", "u1", "user")
			So(err, ShouldEqual, common.ErrUnauthenticated)
		})
	})
}

func TestBan(t *testing.T) {
	Convey("Banning users", t, func() {
		d := setup(t)

		Convey("a moderator bans a user for a month", func() {
			usr, err := Ban(d, "m1", "u1", "spamming answers")
			So(err, ShouldBeNil)
			So(usr.Banned, ShouldBeTrue)
			So(usr.BannedUntil.Equal(base.Add(30*24*time.Hour)), ShouldBeTrue)

			stored, err := FindId(d, "u1")
			So(err, ShouldBeNil)
			So(stored.Banned, ShouldBeTrue)
			So(stored.BanReason, ShouldEqual, "spamming answers")
			So(stored.BannedTimes, ShouldEqual, 1)

			Convey("and lifts it later", func() {
				usr, err := Unban(d, "m1", "u1")
				So(err, ShouldBeNil)
				So(usr.Banned, ShouldBeFalse)

				stored, err := FindId(d, "u1")
				So(err, ShouldBeNil)
				So(stored.Banned, ShouldBeFalse)
				So(stored.BannedUntil, ShouldBeNil)
			})
		})

		Convey("ban scripts can escalate", func() {
			d.rules.Ban.Code = "exports.duration = (banN + 1) * 60;"
			So(d.store.Update("users", "u1", bson.M{"banned_times": 2}), ShouldBeNil)
			usr, err := Ban(d, "a1", "u1", "")
			So(err, ShouldBeNil)
			So(usr.BannedUntil.Equal(base.Add(3*time.Hour)), ShouldBeTrue)
		})

		Convey("nobody bans themselves", func() {
			_, err := Ban(d, "m1", "m1", "")
			So(err, ShouldEqual, common.ErrSelfAction)
			stored, _ := FindId(d, "m1")
			So(stored.Banned, ShouldBeFalse)

			_, err = Unban(d, "m1", "m1")
			So(err, ShouldEqual, common.ErrSelfAction)
		})

		Convey("plain users cannot ban", func() {
			_, err := Ban(d, "u2", "u1", "")
			So(err, ShouldEqual, common.ErrPermissionDenied)
			stored, _ := FindId(d, "u1")
			So(stored.Banned, ShouldBeFalse)
		})
	})
}

func TestListAndUpsert(t *testing.T) {
	Convey("Listing users", t, func() {
		d := setup(t)

		first, err := List(d, "", 3)
		So(err, ShouldBeNil)
		So(len(first.Items), ShouldEqual, 3)
		So(first.Items[0].ID, ShouldEqual, "x1")
		So(first.Next, ShouldNotBeEmpty)

		second, err := List(d, first.Next, 3)
		So(err, ShouldBeNil)
		So(len(second.Items), ShouldEqual, 2)
		So(second.Items[0].ID, ShouldEqual, "u2")
		So(second.Items[1].ID, ShouldEqual, "u1")
		So(second.Next, ShouldBeEmpty)
	})

	Convey("Upserting profiles", t, func() {
		d := setup(t)

		Convey("creates an admin with a derived username", func() {
			usr, err := Upsert(d, User{ID: "zz9f3c1", Email: " Admin@Ummah.dev", DisplayName: "Admin User", RoleName: "admin"})
			So(err, ShouldBeNil)
			So(usr.UserName, ShouldEqual, "adminuser")
			So(usr.Email, ShouldEqual, "admin@ummah.dev")

			role, err := GetRole(d, "zz9f3c1")
			So(err, ShouldBeNil)
			So(role, ShouldEqual, RoleAdmin)
		})

		Convey("promotes an existing profile", func() {
			usr, err := Upsert(d, User{ID: "u1", Email: "u1@ummah.dev", RoleName: "admin"})
			So(err, ShouldBeNil)
			So(usr.Role(), ShouldEqual, RoleAdmin)
			So(usr.UserName, ShouldEqual, "u1")
			So(usr.Created.Equal(base.Add(time.Minute)), ShouldBeTrue)
		})

		Convey("rejects broken emails", func() {
			_, err := Upsert(d, User{ID: "n1", Email: "not-an-email"})
			So(common.IsValidation(err), ShouldBeTrue)
		})
	})
}

// unavailableStore fails every users read and counts writes.
type unavailableStore struct {
	directory.Store
	writes int
}

var errUnreachable = &common.LookupFailed{Op: "find users", Err: errors.New("no reachable servers")}

func (s *unavailableStore) FindId(coll, id string, out interface{}) error {
	if coll == "users" {
		return errUnreachable
	}
	return s.Store.FindId(coll, id, out)
}

func (s *unavailableStore) Scan(coll string, q directory.Query) ([]bson.Raw, error) {
	if coll == "users" {
		return nil, errUnreachable
	}
	return s.Store.Scan(coll, q)
}

func (s *unavailableStore) Insert(coll, id string, doc interface{}) error {
	s.writes++
	return s.Store.Insert(coll, id, doc)
}

func (s *unavailableStore) Update(coll, id string, fields bson.M) error {
	s.writes++
	return s.Store.Update(coll, id, fields)
}

func TestStoreUnavailable(t *testing.T) {
	Convey("When the store cannot be reached", t, func() {
		d := setup(t)
		broken := &unavailableStore{Store: d.store}
		d.store = broken

		Convey("role lookups report the failure instead of not found", func() {
			_, err := GetRole(d, "m1")
			So(common.IsLookupFailed(err), ShouldBeTrue)
			So(err, ShouldNotEqual, UserNotFound)
		})

		Convey("authorization propagates it rather than denying", func() {
			_, err := Authorize(d, "m1", acl.BanUsers)
			So(common.IsLookupFailed(err), ShouldBeTrue)
			So(err, ShouldNotEqual, common.ErrPermissionDenied)
		})

		Convey("moderating actions write nothing", func() {
			_, err := Ban(d, "m1", "u2", "spam")
			So(common.IsLookupFailed(err), ShouldBeTrue)
			_, err = ChangeRole(d, "a1", "u2", "moderator")
			So(common.IsLookupFailed(err), ShouldBeTrue)
			_, err = List(d, "", 0)
			So(common.IsLookupFailed(err), ShouldBeTrue)
			So(broken.writes, ShouldEqual, 0)
		})
	})
}
