package mongo

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FilterSearch builds a case-insensitive `$or` regex filter for the specified fields.
//
// Example:
//
//	FilterSearch("john", "name", "email")
//	=>
//	{"$or": [{"name": {"$regex": "john", "$options": "i"}}, {"email": ...}]}
func FilterSearch(search string, fields ...string) primitive.M {
	or := make(bson.A, 0, len(fields))
	for _, field := range fields {
		or = append(or, bson.M{
			field: bson.M{"$regex": search, "$options": "i"},
		})
	}

	return bson.M{"$or": or}
}

// RequestSort converts sort keys into a MongoDB sort document.
// A "-" prefix sorts descending, "__" separates nested fields and "id" maps to "_id".
//
//	RequestSort([]string{"-created_at", "user__name"})
//	=> bson.D{{"created_at", -1}, {"user.name", 1}}
func RequestSort(sort []string) primitive.D {
	result := bson.D{}

	for _, field := range sort {
		order := 1
		if strings.HasPrefix(field, "-") {
			order = -1
			field = strings.TrimPrefix(field, "-")
		}
		if field == "" {
			continue
		}
		if field == "id" {
			field = ID
		}

		field = strings.ReplaceAll(field, "__", ".")
		result = append(result, bson.E{Key: field, Value: order})
	}

	return result
}

// StructFilter returns the named bson fields of m. With no fields it returns
// every field. The "_id" key is never included.
func StructFilter(m any, fields ...string) (primitive.M, error) {
	raw, err := bson.Marshal(m)
	if err != nil {
		return nil, err
	}

	var origin bson.M
	if err := bson.Unmarshal(raw, &origin); err != nil {
		return nil, err
	}
	delete(origin, ID)

	if len(fields) == 0 {
		return origin, nil
	}

	filtered := make(bson.M, len(fields))
	for _, f := range fields {
		if val, ok := origin[f]; ok {
			filtered[f] = val
		}
	}

	return filtered, nil
}

func commandMap(c bson.Raw) map[string]any {
	var res map[string]any

	if err := bson.Unmarshal(c, &res); err != nil {
		res = map[string]any{"raw": c.String()}
	}

	return res
}
