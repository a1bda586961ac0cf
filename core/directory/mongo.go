package directory

import (
	"github.com/ummahdev/core/core/common"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

// MongoStore keeps documents in a MongoDB database.
type MongoStore struct {
	Session *mgo.Session
	Name    string
}

// DialMongo starts a session against url and selects database name.
func DialMongo(url, name string) (*MongoStore, error) {
	session, err := mgo.Dial(url)
	if err != nil {
		return nil, &common.LookupFailed{Op: "dial", Err: err}
	}
	session.SetMode(mgo.Monotonic, true)
	s := &MongoStore{Session: session, Name: name}
	s.ensureIndexes()
	return s, nil
}

func (s *MongoStore) ensureIndexes() {
	db := s.Session.DB(s.Name)
	db.C("flags").EnsureIndex(mgo.Index{
		Key:        []string{"status", "-created_at", "-_id"},
		Background: true,
	})
	db.C("flags").EnsureIndex(mgo.Index{
		Key:        []string{"reporter_id", "created_at"},
		Background: true,
	})
	db.C("users").EnsureIndex(mgo.Index{
		Key:        []string{"-created_at", "-_id"},
		Background: true,
	})
}

// Each call runs over its own copy of the session.
func (s *MongoStore) c(coll string) (*mgo.Collection, func()) {
	session := s.Session.Copy()
	return session.DB(s.Name).C(coll), session.Close
}

func (s *MongoStore) FindId(coll, id string, out interface{}) error {
	c, done := s.c(coll)
	defer done()
	return mongoErr("find "+coll, c.FindId(id).One(out))
}

func (s *MongoStore) Insert(coll, id string, doc interface{}) error {
	m, err := toM(doc)
	if err != nil {
		return &common.LookupFailed{Op: "encode " + coll, Err: err}
	}
	m["_id"] = id
	c, done := s.c(coll)
	defer done()
	return mongoErr("insert "+coll, c.Insert(m))
}

func (s *MongoStore) Update(coll, id string, fields bson.M) error {
	c, done := s.c(coll)
	defer done()
	return mongoErr("update "+coll, c.UpdateId(id, bson.M{"$set": fields}))
}

func (s *MongoStore) Remove(coll, id string) error {
	c, done := s.c(coll)
	defer done()
	return mongoErr("remove "+coll, c.RemoveId(id))
}

func (s *MongoStore) Count(coll string, q Query) (int, error) {
	c, done := s.c(coll)
	defer done()
	n, err := c.Find(mongoFilter(q)).Count()
	return n, mongoErr("count "+coll, err)
}

func (s *MongoStore) Scan(coll string, q Query) ([]bson.Raw, error) {
	c, done := s.c(coll)
	defer done()
	query := c.Find(mongoFilter(q)).Sort("-created_at", "-_id")
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	list := []bson.Raw{}
	iter := query.Iter()
	for {
		var raw bson.Raw
		if !iter.Next(&raw) {
			break
		}
		list = append(list, raw)
	}
	if err := iter.Close(); err != nil {
		return nil, mongoErr("scan "+coll, err)
	}
	return list, nil
}

func (s *MongoStore) Close() {
	s.Session.Close()
}

func mongoFilter(q Query) bson.M {
	filter := bson.M{}
	for k, v := range q.Filter {
		filter[k] = v
	}
	if !q.Since.IsZero() {
		filter["created_at"] = bson.M{"$gte": q.Since}
	}
	if c := q.After; c != nil {
		filter["$or"] = []bson.M{
			{"created_at": bson.M{"$lt": c.Created}},
			{"created_at": c.Created, "_id": bson.M{"$lt": c.ID}},
		}
	}
	return filter
}

func mongoErr(op string, err error) error {
	switch err {
	case nil:
		return nil
	case mgo.ErrNotFound:
		return ErrNotFound
	}
	if mgo.IsDup(err) {
		return &common.LookupFailed{Op: op, Err: ErrDuplicate}
	}
	return &common.LookupFailed{Op: op, Err: err}
}
