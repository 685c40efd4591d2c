package mongo

import (
	"fmt"
	"reflect"

	"github.com/logistics-id/mongorepo/common"
)

// ResolveCollectionName returns the collection T is stored in. In order of
// precedence: a non-empty override, common.CollectionNamer, common.CollectionGrouper,
// then the Go type name of T. An empty result is a configuration error.
func ResolveCollectionName[T any](override string) (string, error) {
	name := override
	if name == "" {
		name = collectionName[T]()
	}

	if name == "" {
		return "", fmt.Errorf("%w: collection name cannot be empty for entity %s",
			common.ErrInvalidConfig, reflect.TypeOf((*T)(nil)).Elem())
	}
	return name, nil
}

func collectionName[T any]() string {
	var v T

	if n, ok := any(&v).(common.CollectionNamer); ok {
		return n.CollectionName()
	}
	if g, ok := any(&v).(common.CollectionGrouper); ok {
		return g.CollectionGroup()
	}

	return reflect.TypeOf((*T)(nil)).Elem().Name()
}
