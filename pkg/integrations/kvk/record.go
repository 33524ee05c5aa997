package kvk

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Record is a decoded JSON object from the registry. Numbers are kept as
// json.Number so identifiers keep their exact text.
//
// Lookups are presence-aware: a key holding JSON null counts as absent, an
// empty string counts as present.
type Record map[string]any

// decodeRecord parses body as a single JSON object. JSON null and an empty
// array decode to an empty Record; any other non-object is ErrInvalidJSON.
func decodeRecord(body []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after top-level value", ErrInvalidJSON)
	}

	switch t := v.(type) {
	case map[string]any:
		return Record(t), nil
	case nil:
		return Record{}, nil
	case []any:
		if len(t) == 0 {
			return Record{}, nil
		}
	}
	return nil, fmt.Errorf("%w: expected object, got %s", ErrInvalidJSON, kindOf(v))
}

// Has reports whether key is present with a non-null value.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// String returns the value of key as a string. Numbers and booleans are
// rendered as their JSON text; objects and arrays are reported as absent.
func (r Record) String(key string) (string, bool) {
	if !r.Has(key) {
		return "", false
	}
	return scalarString(r[key])
}

// First returns the value of the first key in keys that is present.
// Resolution stops at the first present key even if it is not a scalar.
func (r Record) First(keys ...string) (string, bool) {
	for _, k := range keys {
		if r.Has(k) {
			return r.String(k)
		}
	}
	return "", false
}

// Strings returns the scalar elements of the array at key. It returns nil
// if key is absent or not an array.
func (r Record) Strings(key string) []string {
	list, ok := r[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := scalarString(item); ok {
			out = append(out, s)
		}
	}
	return out
}

// Records returns the array at key as records. Elements that are not
// objects become empty records. ok is false if key is absent or not an array.
func (r Record) Records(key string) (recs []Record, ok bool) {
	list, ok := r[key].([]any)
	if !ok {
		return nil, false
	}
	recs = make([]Record, 0, len(list))
	for _, item := range list {
		obj, _ := item.(map[string]any)
		if obj == nil {
			obj = map[string]any{}
		}
		recs = append(recs, Record(obj))
	}
	return recs, true
}

// Merge copies the top-level fields of other into r. Fields already in r
// are overwritten.
func (r Record) Merge(other Record) {
	for k, v := range other {
		r[k] = v
	}
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	default:
		return "", false
	}
}

func kindOf(v any) string {
	switch v.(type) {
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
