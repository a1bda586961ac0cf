package flags

import (
	"errors"
	"time"

	"github.com/ummahdev/core/core/common"
	"github.com/ummahdev/core/core/directory"
	"gopkg.in/mgo.v2/bson"
)

var ErrFlagNotFound = errors.New("Flag has not been found by given criteria.")

// All statuses, when listing.
const ALL = "all"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

func FindId(d deps, id string) (f Flag, err error) {
	err = d.Directory().FindId("flags", id, &f)
	if err == directory.ErrNotFound {
		return f, ErrFlagNotFound
	}
	if err != nil {
		return
	}
	if cerr := f.check(); cerr != nil {
		err = &common.LookupFailed{Op: "decode flags", Err: cerr}
	}
	return
}

// List flags by status (or ALL) newest first, resuming after cursor.
func List(d deps, status string, cursor string, limit int) (page Page, err error) {
	q := directory.Query{Limit: limit}
	if status != "" && status != ALL {
		st, valid := parseStatus(status)
		if !valid {
			return page, common.Invalid("status", "unknown status "+status)
		}
		q.Filter = bson.M{"status": string(st)}
	}
	if q.After, err = directory.DecodeCursor(cursor); err != nil {
		return
	}
	if q.Limit <= 0 {
		q.Limit = DefaultPageSize
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	list, err := d.Directory().Scan("flags", q)
	if err != nil {
		return
	}
	page.Items = make([]Flag, 0, len(list))
	for _, raw := range list {
		var f Flag
		if err = raw.Unmarshal(&f); err == nil {
			err = f.check()
		}
		if err != nil {
			err = &common.LookupFailed{Op: "decode flags", Err: err}
			return
		}
		page.Items = append(page.Items, f)
	}
	if n := len(page.Items); n == q.Limit {
		last := page.Items[n-1]
		page.Next = directory.CursorOf(last.Created, last.ID).Encode()
	}
	return
}

// Counts of persisted flags per status.
func Counts(d deps) (map[Status]int, error) {
	counts := map[Status]int{}
	for _, st := range []Status{PENDING, APPROVED, REJECTED} {
		n, err := d.Directory().Count("flags", directory.Query{Filter: bson.M{"status": string(st)}})
		if err != nil {
			return nil, err
		}
		counts[st] = n
	}
	return counts, nil
}

// TodaysCountByUser flags.
func TodaysCountByUser(d deps, id string) (int, error) {
	today := now()
	startOfDay := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return d.Directory().Count("flags", directory.Query{
		Filter: bson.M{"reporter_id": id},
		Since:  startOfDay,
	})
}
