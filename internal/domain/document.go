package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// Document is the schema-less key/value form used to move descriptions across
// process boundaries. Values are the shapes produced by encoding/json: bool,
// string, numbers, []any and nested documents.
type Document = map[string]any

// DecodeError reports a document value whose shape does not match the field it
// is mapped to. Key is the full path of the offending value, e.g.
// "partitions[2].leader.port".
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func mismatch(key, want string, v any) error {
	return &DecodeError{Key: key, Err: fmt.Errorf("expected %s, got %T", want, v)}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func indexKey(prefix string, i int) string {
	return fmt.Sprintf("%s[%d]", prefix, i)
}

func docBool(doc Document, prefix, key string) (bool, bool, error) {
	v, ok := doc[key]
	if !ok {
		return false, false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, false, mismatch(joinKey(prefix, key), "boolean", v)
	}
	return b, true, nil
}

func docString(doc Document, prefix, key string) (string, bool, error) {
	v, ok := doc[key]
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, mismatch(joinKey(prefix, key), "string", v)
	}
	return s, true, nil
}

func docInt32(doc Document, prefix, key string) (int32, bool, error) {
	v, ok := doc[key]
	if !ok {
		return 0, false, nil
	}
	n, ok := asInt32(v)
	if !ok {
		return 0, false, mismatch(joinKey(prefix, key), "32-bit integer", v)
	}
	return n, true, nil
}

func docDocument(doc Document, prefix, key string) (Document, bool, error) {
	v, ok := doc[key]
	if !ok {
		return nil, false, nil
	}
	d, ok := v.(map[string]any)
	if !ok {
		return nil, false, mismatch(joinKey(prefix, key), "object", v)
	}
	return d, true, nil
}

func docSlice(doc Document, prefix, key string) ([]any, bool, error) {
	v, ok := doc[key]
	if !ok {
		return nil, false, nil
	}
	switch s := v.(type) {
	case []any:
		if s == nil {
			s = []any{}
		}
		return s, true, nil
	case []map[string]any:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out, true, nil
	case []string:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out, true, nil
	}
	return nil, false, mismatch(joinKey(prefix, key), "array", v)
}

// asInt32 accepts every numeric shape a document may carry after passing
// through Go code or encoding/json, as long as the value is integral and fits.
func asInt32(v any) (int32, bool) {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int8:
		n = int64(x)
	case int16:
		n = int64(x)
	case int32:
		return x, true
	case int64:
		n = x
	case uint8:
		n = int64(x)
	case uint16:
		n = int64(x)
	case uint32:
		n = int64(x)
	case uint64:
		if x > math.MaxInt32 {
			return 0, false
		}
		n = int64(x)
	case uint:
		if uint64(x) > math.MaxInt32 {
			return 0, false
		}
		n = int64(x)
	case float32:
		return floatToInt32(float64(x))
	case float64:
		return floatToInt32(x)
	case json.Number:
		i, err := x.Int64()
		if err != nil {
			return 0, false
		}
		n = i
	default:
		return 0, false
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, false
	}
	return int32(n), true
}

func floatToInt32(f float64) (int32, bool) {
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int32(f), true
}
