package value

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"
)

// FromNative converts a decoded document (encoding/json, yaml.v3, toml or
// CEL output) into a Value. Unknown scalar types are rendered with fmt.
func FromNative(v interface{}) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case bool:
		return Bool(x)
	case string:
		return String(x)
	case json.Number:
		return fromJSONNumber(x)
	case int:
		return Int(int64(x))
	case int8:
		return Int(int64(x))
	case int16:
		return Int(int64(x))
	case int32:
		return Int(int64(x))
	case int64:
		return Int(x)
	case uint:
		return fromUint(uint64(x))
	case uint8:
		return Int(int64(x))
	case uint16:
		return Int(int64(x))
	case uint32:
		return Int(int64(x))
	case uint64:
		return fromUint(x)
	case float32:
		return Float(float64(x))
	case float64:
		return Float(x)
	case time.Time:
		return String(x.Format(time.RFC3339Nano))
	case []string:
		return Strings(x)
	case []interface{}:
		list := make([]Value, len(x))
		for i, e := range x {
			list[i] = FromNative(e)
		}
		return Value{kind: KindList, list: list}
	case []map[string]interface{}:
		list := make([]Value, len(x))
		for i, e := range x {
			list[i] = FromNative(e)
		}
		return Value{kind: KindList, list: list}
	case map[string]interface{}:
		m := make(map[string]Value, len(x))
		for k, e := range x {
			m[k] = FromNative(e)
		}
		return Value{kind: KindMap, m: m}
	case map[interface{}]interface{}:
		m := make(map[string]Value, len(x))
		for k, e := range x {
			m[fmt.Sprint(k)] = FromNative(e)
		}
		return Value{kind: KindMap, m: m}
	}

	// Fall back to reflection for typed slices and maps
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		list := make([]Value, rv.Len())
		for i := range list {
			list[i] = FromNative(rv.Index(i).Interface())
		}
		return Value{kind: KindList, list: list}
	case reflect.Map:
		m := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[fmt.Sprint(iter.Key().Interface())] = FromNative(iter.Value().Interface())
		}
		return Value{kind: KindMap, m: m}
	case reflect.Ptr:
		if rv.IsNil() {
			return Null()
		}
		return FromNative(rv.Elem().Interface())
	}

	return String(fmt.Sprint(v))
}

// fromUint keeps unsigned values in the integer domain when they fit
func fromUint(u uint64) Value {
	if u > math.MaxInt64 {
		return Float(float64(u))
	}
	return Int(int64(u))
}

// fromJSONNumber keeps integral literals in the integer domain
func fromJSONNumber(n json.Number) Value {
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return Int(i)
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return String(n.String())
	}
	return Float(f)
}
