package event

import (
	"fmt"
	"math"
	"strconv"
)

// Kind discriminates the shape of a raw field value.
type Kind int

const (
	KindAbsent Kind = iota // key not present in the raw item
	KindNull
	KindString
	KindMap
	KindList
	KindOther // numbers, booleans, binary and anything else
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindMap:
		return "map"
	case KindList:
		return "list"
	default:
		return "other"
	}
}

// Value is a raw field value tagged with its shape. Items decoded from the
// store or from JSON carry arbitrary types; Value makes every caller branch
// on Kind instead of guessing with type assertions.
type Value struct {
	kind Kind
	str  string
	m    map[string]any
	list []any
	raw  any
}

// Absent is the Value of a missing key.
var Absent = Value{kind: KindAbsent}

// ValueOf classifies v.
func ValueOf(v any) Value {
	switch t := v.(type) {
	case nil:
		return Value{kind: KindNull}
	case string:
		return Value{kind: KindString, str: t, raw: t}
	case map[string]any:
		return Value{kind: KindMap, m: t, raw: t}
	case map[string]string:
		m := make(map[string]any, len(t))
		for k, s := range t {
			m[k] = s
		}
		return Value{kind: KindMap, m: m, raw: t}
	case []any:
		return Value{kind: KindList, list: t, raw: t}
	case []string:
		// String sets decode to []string.
		list := make([]any, len(t))
		for i, s := range t {
			list[i] = s
		}
		return Value{kind: KindList, list: list, raw: t}
	case []float64:
		list := make([]any, len(t))
		for i, f := range t {
			list[i] = f
		}
		return Value{kind: KindList, list: list, raw: t}
	case []map[string]any:
		list := make([]any, len(t))
		for i, m := range t {
			list[i] = m
		}
		return Value{kind: KindList, list: list, raw: t}
	default:
		return Value{kind: KindOther, raw: v}
	}
}

// Lookup returns the Value stored under key, or Absent.
func Lookup(item map[string]any, key string) Value {
	v, ok := item[key]
	if !ok {
		return Absent
	}
	return ValueOf(v)
}

// Kind reports the shape of the value.
func (v Value) Kind() Kind { return v.kind }

// Present reports whether the key existed, even with a null value.
func (v Value) Present() bool { return v.kind != KindAbsent }

// Raw returns the underlying value, nil for absent and null values.
func (v Value) Raw() any { return v.raw }

// Str returns the string payload of a KindString value.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Map returns the mapping payload of a KindMap value.
func (v Value) Map() (map[string]any, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.m, true
}

// List returns the elements of a KindList value.
func (v Value) List() ([]any, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// Truthy follows the loose truthiness the table data was written with:
// empty strings, empty collections, zero numbers, false and null are falsy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindAbsent, KindNull:
		return false
	case KindString:
		return v.str != ""
	case KindMap:
		return len(v.m) > 0
	case KindList:
		return len(v.list) > 0
	}

	switch t := v.raw.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case float32:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case int32:
		return t != 0
	case uint64:
		return t != 0
	case []byte:
		return len(t) > 0
	default:
		return true
	}
}

// String renders the value as plain text. Integral floats drop their
// fractional part so numeric ids and dates read back the way they were typed.
func (v Value) String() string {
	switch v.kind {
	case KindAbsent, KindNull:
		return ""
	case KindString:
		return v.str
	}
	return stringify(v.raw)
}

func stringify(x any) string {
	switch t := x.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return formatFloat(t)
	case float32:
		return formatFloat(float64(t))
	case bool:
		return strconv.FormatBool(t)
	case []byte:
		return string(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
