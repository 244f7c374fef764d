package value

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind describes the variant held by a Value
type Kind int

const (
	// KindNull is the JSON null
	KindNull Kind = iota
	// KindBool is a boolean
	KindBool
	// KindNumber is an integral or real number
	KindNumber
	// KindString is a string
	KindString
	// KindList is an ordered sequence of values
	KindList
	// KindMap is a string-keyed mapping of values
	KindMap
)

// String returns the kind name used in error messages
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is an immutable, dynamically-typed template value.
// The zero Value is null.
type Value struct {
	kind  Kind
	b     bool
	i     int64
	f     float64
	isInt bool
	s     string
	list  []Value
	m     map[string]Value
}

// Null returns the null value
func Null() Value {
	return Value{kind: KindNull}
}

// Bool creates a boolean value
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Int creates an integral number
func Int(i int64) Value {
	return Value{kind: KindNumber, i: i, f: float64(i), isInt: true}
}

// Float creates a real number
func Float(f float64) Value {
	return Value{kind: KindNumber, f: f}
}

// String creates a string value
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// List creates a list value from a copy of items
func List(items ...Value) Value {
	list := make([]Value, len(items))
	copy(list, items)
	return Value{kind: KindList, list: list}
}

// Strings creates a list of string values
func Strings(items []string) Value {
	list := make([]Value, len(items))
	for i, s := range items {
		list[i] = String(s)
	}
	return Value{kind: KindList, list: list}
}

// Map creates a map value from a copy of m
func Map(m map[string]Value) Value {
	cp := make(map[string]Value, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Value{kind: KindMap, m: cp}
}

// Kind returns the variant held by v
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is null
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// IsInt reports whether v is a number held in the integer domain
func (v Value) IsInt() bool {
	return v.kind == KindNumber && v.isInt
}

// AsBool returns the boolean held by v
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsInt returns v as an int64. Real numbers convert only when they have no
// fractional part and fit in an int64.
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	if v.isInt {
		return v.i, true
	}
	if math.IsNaN(v.f) || math.IsInf(v.f, 0) || v.f != math.Trunc(v.f) {
		return 0, false
	}
	if v.f < math.MinInt64 || v.f >= math.MaxInt64 {
		return 0, false
	}
	return int64(v.f), true
}

// AsFloat returns any number as a float64
func (v Value) AsFloat() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	if v.isInt {
		return float64(v.i), true
	}
	return v.f, true
}

// AsString returns the string held by v
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// AsList returns a copy of the elements of a list
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	out := make([]Value, len(v.list))
	copy(out, v.list)
	return out, true
}

// AsMap returns a copy of the entries of a map
func (v Value) AsMap() (map[string]Value, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	out := make(map[string]Value, len(v.m))
	for k, e := range v.m {
		out[k] = e
	}
	return out, true
}

// Len returns the rune count of a string or the element count of a list or
// map. Other kinds have length zero.
func (v Value) Len() int {
	switch v.kind {
	case KindString:
		return len([]rune(v.s))
	case KindList:
		return len(v.list)
	case KindMap:
		return len(v.m)
	default:
		return 0
	}
}

// Keys returns the keys of a map in sorted order
func (v Value) Keys() []string {
	if v.kind != KindMap {
		return nil
	}
	keys := make([]string, 0, len(v.m))
	for k := range v.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Field resolves one path segment: a key of a map, or a decimal index into a
// list. The boolean is false when there is no such binding.
func (v Value) Field(name string) (Value, bool) {
	switch v.kind {
	case KindMap:
		e, ok := v.m[name]
		return e, ok
	case KindList:
		idx, err := strconv.Atoi(name)
		if err != nil || idx < 0 || idx >= len(v.list) {
			return Value{}, false
		}
		return v.list[idx], true
	default:
		return Value{}, false
	}
}

// Equal reports deep equality. Numbers compare by numeric value, so 1 and
// 1.0 are equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		if v.isInt && o.isInt {
			return v.i == o.i
		}
		a, _ := v.AsFloat()
		b, _ := o.AsFloat()
		return a == b
	case KindString:
		return v.s == o.s
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.m) != len(o.m) {
			return false
		}
		for k, e := range v.m {
			oe, ok := o.m[k]
			if !ok || !e.Equal(oe) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders v the way it is substituted into template output
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		if v.isInt {
			return strconv.FormatInt(v.i, 10)
		}
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindString:
		return v.s
	case KindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		return "[object]"
	default:
		return ""
	}
}

// Native converts v to plain Go values: nil, bool, int64, float64, string,
// []interface{} and map[string]interface{}.
func (v Value) Native() interface{} {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		if v.isInt {
			return v.i
		}
		return v.f
	case KindString:
		return v.s
	case KindList:
		out := make([]interface{}, len(v.list))
		for i, e := range v.list {
			out[i] = e.Native()
		}
		return out
	case KindMap:
		out := make(map[string]interface{}, len(v.m))
		for k, e := range v.m {
			out[k] = e.Native()
		}
		return out
	default:
		return nil
	}
}
