package directory

import (
	"math"
	"reflect"
	"sort"
	"sync"
	"time"

	lediscfg "github.com/siddontang/ledisdb/config"
	"github.com/siddontang/ledisdb/ledis"
	"github.com/ummahdev/core/core/common"
	"gopkg.in/mgo.v2/bson"
)

const (
	minScore int64 = math.MinInt64 + 1
	maxScore int64 = math.MaxInt64
)

// LedisStore keeps documents inside an embedded ledis database.
//
// Each document lives under "<coll>:<id>" as bson bytes and its id is
// indexed by creation time (ms) in the sorted set "<coll>:~created".
type LedisStore struct {
	conn *ledis.Ledis
	db   *ledis.DB

	// serializes read-modify-write cycles
	mu sync.Mutex
}

// OpenLedis opens (or creates) an embedded store under dir.
func OpenLedis(dir string) (*LedisStore, error) {
	cfg := lediscfg.NewConfigDefault()
	cfg.DataDir = dir
	conn, err := ledis.Open(cfg)
	if err != nil {
		return nil, &common.LookupFailed{Op: "open ledis", Err: err}
	}
	db, err := conn.Select(0)
	if err != nil {
		conn.Close()
		return nil, &common.LookupFailed{Op: "select ledis", Err: err}
	}
	return &LedisStore{conn: conn, db: db}, nil
}

func docKey(coll, id string) []byte {
	return []byte(coll + ":" + id)
}

func indexKey(coll string) []byte {
	return []byte(coll + ":~created")
}

func (s *LedisStore) get(coll, id string) ([]byte, error) {
	data, err := s.db.Get(docKey(coll, id))
	if err != nil {
		return nil, &common.LookupFailed{Op: "find " + coll, Err: err}
	}
	if data == nil {
		return nil, ErrNotFound
	}
	return data, nil
}

func (s *LedisStore) FindId(coll, id string, out interface{}) error {
	data, err := s.get(coll, id)
	if err != nil {
		return err
	}
	if err := bson.Unmarshal(data, out); err != nil {
		return &common.LookupFailed{Op: "decode " + coll, Err: err}
	}
	return nil
}

func (s *LedisStore) Insert(coll, id string, doc interface{}) error {
	m, err := toM(doc)
	if err != nil {
		return &common.LookupFailed{Op: "encode " + coll, Err: err}
	}
	m["_id"] = id
	created, ok := m["created_at"].(time.Time)
	if !ok || created.IsZero() {
		created = time.Now()
		m["created_at"] = created
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	exists, err := s.exists(coll, id)
	if err != nil {
		return err
	}
	if exists {
		return &common.LookupFailed{Op: "insert " + coll, Err: ErrDuplicate}
	}
	if err := s.put(coll, id, m); err != nil {
		return err
	}
	pair := ledis.ScorePair{Score: created.UnixMilli(), Member: []byte(id)}
	if _, err := s.db.ZAdd(indexKey(coll), pair); err != nil {
		return &common.LookupFailed{Op: "index " + coll, Err: err}
	}
	return nil
}

func (s *LedisStore) exists(coll, id string) (bool, error) {
	n, err := s.db.Exists(docKey(coll, id))
	if err != nil {
		return false, &common.LookupFailed{Op: "find " + coll, Err: err}
	}
	return n > 0, nil
}

func (s *LedisStore) put(coll, id string, m bson.M) error {
	data, err := bson.Marshal(m)
	if err != nil {
		return &common.LookupFailed{Op: "encode " + coll, Err: err}
	}
	if err := s.db.Set(docKey(coll, id), data); err != nil {
		return &common.LookupFailed{Op: "write " + coll, Err: err}
	}
	return nil
}

func (s *LedisStore) Update(coll, id string, fields bson.M) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.get(coll, id)
	if err != nil {
		return err
	}
	m := bson.M{}
	if err := bson.Unmarshal(data, &m); err != nil {
		return &common.LookupFailed{Op: "decode " + coll, Err: err}
	}
	for k, v := range fields {
		m[k] = v
	}
	return s.put(coll, id, m)
}

func (s *LedisStore) Remove(coll, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Del reports the number of keys given, not the number removed.
	exists, err := s.exists(coll, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	if _, err := s.db.Del(docKey(coll, id)); err != nil {
		return &common.LookupFailed{Op: "remove " + coll, Err: err}
	}
	if _, err := s.db.ZRem(indexKey(coll), []byte(id)); err != nil {
		return &common.LookupFailed{Op: "unindex " + coll, Err: err}
	}
	return nil
}

func (s *LedisStore) Count(coll string, q Query) (int, error) {
	q.Limit = 0
	list, err := s.Scan(coll, q)
	return len(list), err
}

func (s *LedisStore) Scan(coll string, q Query) ([]bson.Raw, error) {
	min := minScore
	if !q.Since.IsZero() {
		min = q.Since.UnixMilli()
	}
	pairs, err := s.db.ZRevRangeByScore(indexKey(coll), min, maxScore, 0, -1)
	if err != nil {
		return nil, &common.LookupFailed{Op: "scan " + coll, Err: err}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].Score != pairs[j].Score {
			return pairs[i].Score > pairs[j].Score
		}
		return string(pairs[i].Member) > string(pairs[j].Member)
	})
	filter, err := toM(q.Filter)
	if err != nil {
		return nil, &common.LookupFailed{Op: "encode filter", Err: err}
	}

	list := []bson.Raw{}
	for _, p := range pairs {
		id := string(p.Member)
		if q.After != nil && !q.After.Follows(time.UnixMilli(p.Score), id) {
			continue
		}
		data, err := s.get(coll, id)
		if err == ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		if len(filter) > 0 {
			m := bson.M{}
			if err := bson.Unmarshal(data, &m); err != nil {
				return nil, &common.LookupFailed{Op: "decode " + coll, Err: err}
			}
			if !matches(m, filter) {
				continue
			}
		}
		list = append(list, bson.Raw{Kind: 0x03, Data: data})
		if q.Limit > 0 && len(list) == q.Limit {
			break
		}
	}
	return list, nil
}

func matches(doc, filter bson.M) bool {
	for k, v := range filter {
		if !reflect.DeepEqual(doc[k], v) {
			return false
		}
	}
	return true
}

func (s *LedisStore) Close() {
	s.conn.Close()
}
