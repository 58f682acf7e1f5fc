package adapter

import (
	"fmt"
	"reflect"

	"github.com/spf13/cast"
)

// Payload is the value handed to an adapter: a Record, a text value
// (string, []byte or fmt.Stringer) or a Summary from a previous adapter.
type Payload = any

// Record is a key/value payload.
type Record map[string]any

// Summary is the interpreted result of a successful run. Summaries render
// as text and expose their fields, so a chain can feed one adapter's
// summary to the next adapter whatever its shape.
type Summary interface {
	fmt.Stringer
	Fields() Record
}

// recordOf returns p viewed as a record. The returned map must not be
// modified; it may be the caller's own. Other map types are copied when
// every key converts to a string.
func recordOf(p Payload) (Record, bool) {
	switch v := p.(type) {
	case Record:
		return v, v != nil
	case map[string]any:
		return Record(v), v != nil
	case Summary:
		if isNil(v) {
			return nil, false
		}
		return v.Fields(), true
	default:
		return convertMap(p)
	}
}

func convertMap(p Payload) (Record, bool) {
	rv := reflect.ValueOf(p)
	if rv.Kind() != reflect.Map || rv.IsNil() {
		return nil, false
	}
	rec := make(Record, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key().Interface()
		if isNil(k) {
			return nil, false
		}
		key, err := cast.ToStringE(k)
		if err != nil {
			return nil, false
		}
		rec[key] = iter.Value().Interface()
	}
	return rec, true
}

// textOf returns p viewed as text. A nil Stringer is not text.
func textOf(p Payload) (string, bool) {
	switch v := p.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	case fmt.Stringer:
		if isNil(v) {
			return "", false
		}
		return v.String(), true
	default:
		return "", false
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
