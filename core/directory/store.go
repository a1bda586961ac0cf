// Package directory implements the document store contract shared by every
// domain package: documents keyed by opaque string ids, equality filters and
// ordered scans by creation time.
package directory

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ummahdev/core/core/common"
	"gopkg.in/mgo.v2/bson"
)

// ErrNotFound is returned when no document matches the given id.
var ErrNotFound = errors.New("document not found")

// ErrDuplicate is wrapped into LookupFailed when inserting an existing id.
var ErrDuplicate = errors.New("document already exists")

// Store is the directory of persisted documents.
type Store interface {
	// FindId decodes the document with id into out.
	FindId(coll, id string, out interface{}) error
	// Insert refuses ids already present.
	Insert(coll, id string, doc interface{}) error
	// Update merges fields into an existing document.
	Update(coll, id string, fields bson.M) error
	Remove(coll, id string) error
	Count(coll string, q Query) (int, error)
	// Scan returns documents newest first (created_at desc, _id desc).
	Scan(coll string, q Query) ([]bson.Raw, error)
	Close()
}

// Query over a collection. Filter holds equality predicates only.
type Query struct {
	Filter bson.M
	Since  time.Time
	After  *Cursor
	Limit  int
}

// Cursor points to the last document of a page.
type Cursor struct {
	Created time.Time
	ID      string
}

// CursorOf builds a cursor after the document (created, id).
func CursorOf(created time.Time, id string) *Cursor {
	return &Cursor{Created: created, ID: id}
}

// Encode cursor as an opaque token.
func (c Cursor) Encode() string {
	raw := strconv.FormatInt(c.Created.UnixMilli(), 10) + ":" + c.ID
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// Follows reports whether a document created at created with id comes after
// the cursor in scan order.
func (c Cursor) Follows(created time.Time, id string) bool {
	a, b := created.UnixMilli(), c.Created.UnixMilli()
	return a < b || (a == b && id < c.ID)
}

// DecodeCursor parses a token produced by Encode. An empty token means the
// first page and yields a nil cursor.
func DecodeCursor(token string) (*Cursor, error) {
	if token == "" {
		return nil, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, common.Invalid("cursor", "malformed token")
	}
	parts := strings.SplitN(string(raw), ":", 2)
	if len(parts) != 2 || parts[1] == "" {
		return nil, common.Invalid("cursor", "malformed token")
	}
	ms, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, common.Invalid("cursor", "malformed token")
	}
	return &Cursor{Created: time.UnixMilli(ms), ID: parts[1]}, nil
}

// Open a store by driver name.
func Open(driver, url, name string) (Store, error) {
	switch driver {
	case "mongo":
		return DialMongo(url, name)
	case "ledis":
		return OpenLedis(url)
	}
	return nil, fmt.Errorf("unknown store driver %q", driver)
}

func toM(doc interface{}) (bson.M, error) {
	data, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	m := bson.M{}
	err = bson.Unmarshal(data, &m)
	return m, err
}
