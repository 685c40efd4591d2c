package common

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ID is the set of identifier types an entity may carry.
type ID interface {
	string | primitive.ObjectID
}

// Entity is implemented by every storable document. SetID is called by the
// repository when an identifier is generated on insert. The id must encode as
// the top-level _id field; a repository refuses types where it does not.
type Entity[K ID] interface {
	GetID() K
	SetID(id K)
}

// CollectionNamer names the collection a type is stored in, taking precedence
// over any group or type name.
type CollectionNamer interface {
	CollectionName() string
}

// CollectionGrouper lets a family of entity types share one collection.
// It is usually implemented by a base struct embedded in every member.
type CollectionGrouper interface {
	CollectionGroup() string
}

// Base is an embeddable entity with a string identifier. Embed it with the
// `bson:",inline"` tag so the id is stored as the document's _id.
type Base struct {
	ID string `bson:"_id,omitempty" json:"id"`
}

func (e *Base) GetID() string {
	return e.ID
}

func (e *Base) SetID(id string) {
	e.ID = id
}

// ObjectBase is an embeddable entity keyed by a native ObjectID.
type ObjectBase struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
}

func (e *ObjectBase) GetID() primitive.ObjectID {
	return e.ID
}

func (e *ObjectBase) SetID(id primitive.ObjectID) {
	e.ID = id
}

// IsZeroID reports whether id has not been assigned yet.
func IsZeroID[K ID](id K) bool {
	var zero K
	return id == zero
}

// NewID generates a fresh identifier. String ids receive the hex form of a
// new ObjectID so both kinds sort by creation time.
func NewID[K ID]() K {
	var id K
	switch p := any(&id).(type) {
	case *string:
		*p = primitive.NewObjectID().Hex()
	case *primitive.ObjectID:
		*p = primitive.NewObjectID()
	}
	return id
}

// IDString renders id for logs and error messages.
func IDString[K ID](id K) string {
	switch v := any(id).(type) {
	case string:
		return v
	case primitive.ObjectID:
		return v.Hex()
	}
	return ""
}
