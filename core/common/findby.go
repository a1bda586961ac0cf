package common

import (
	"gopkg.in/mgo.v2/bson"
)

// NewID generates a fresh opaque document id.
func NewID() string {
	return bson.NewObjectId().Hex()
}
