package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// TagList is the canonical tag representation: an ordered sequence of
// trimmed, non-empty strings. Duplicates are allowed.
//
// Old clients have written tags to storage as a JSON string (sometimes
// serialized twice), so decoding runs the value through NormalizeTags
// instead of failing. Every update writes the normalized form back, which
// repairs corrupted documents over time.
type TagList []string

func (t *TagList) UnmarshalBSONValue(bt bsontype.Type, data []byte) error {
	switch bt {
	case bsontype.Null, bsontype.Undefined:
		*t = TagList{}
		return nil
	case bsontype.String:
		var raw string
		if err := bson.UnmarshalValue(bsontype.String, data, &raw); err != nil {
			return err
		}
		*t = NormalizeTags(raw)
		return nil
	case bsontype.Array:
		var raw []interface{}
		if err := bson.UnmarshalValue(bsontype.Array, data, &raw); err != nil {
			return err
		}
		*t = NormalizeTags(raw)
		return nil
	default:
		*t = TagList{}
		return nil
	}
}

// NormalizeTags turns an arbitrary client-supplied tag value into the
// canonical form. Accepted shapes: a sequence of strings, a single
// comma-joined string, or a string that is itself a serialized array
// (possibly serialized more than once). Anything else yields no tags.
// Normalizing an already-normalized value is a no-op.
func NormalizeTags(value interface{}) TagList {
	// Unwrap serialized arrays. A parse failure means the value is
	// unrecoverable garbage and the result is empty.
	for {
		s, ok := value.(string)
		if !ok || !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
			break
		}
		var parsed interface{}
		if err := json.Unmarshal([]byte(s), &parsed); err != nil {
			return TagList{}
		}
		value = parsed
	}

	switch v := value.(type) {
	case nil:
		return TagList{}
	case TagList:
		return normalizeStrings(v)
	case []string:
		return normalizeStrings(v)
	case []interface{}:
		tags := make(TagList, 0, len(v))
		for _, el := range v {
			var s string
			if str, ok := el.(string); ok {
				s = strings.TrimSpace(str)
			} else {
				s = strings.TrimSpace(fmt.Sprint(el))
			}
			if s != "" {
				tags = append(tags, s)
			}
		}
		return tags
	case string:
		if strings.TrimSpace(v) == "" {
			return TagList{}
		}
		parts := strings.Split(v, ",")
		tags := make(TagList, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				tags = append(tags, trimmed)
			}
		}
		return tags
	default:
		return TagList{}
	}
}

func normalizeStrings(in []string) TagList {
	tags := make(TagList, 0, len(in))
	for _, s := range in {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
