package helper

import (
	"errors"
	"math"
	"time"

	"github.com/araddon/dateparse"

	"github.com/aescanero/dago-hbs-render/internal/value"
)

var errCoerce = errors.New("cannot coerce")

// coerce converts a present value to the Go representation of t:
// value.Value, bool, int64, float64, string, []string, []value.Value,
// map[string]value.Value or time.Time.
func coerce(t ParamType, v value.Value) (interface{}, error) {
	switch t {
	case Any, Maybe:
		return v, nil

	case Bool:
		if b, ok := v.AsBool(); ok {
			return b, nil
		}

	case Int:
		if i, ok := v.AsInt(); ok {
			return i, nil
		}

	case Count:
		if i, ok := v.AsInt(); ok && i >= 0 {
			return i, nil
		}

	case Real:
		if f, ok := v.AsFloat(); ok {
			return f, nil
		}

	case String:
		if s, ok := v.AsString(); ok {
			return s, nil
		}

	case StringList:
		items, ok := v.AsList()
		if !ok {
			break
		}
		out := make([]string, len(items))
		for i, item := range items {
			s, ok := item.AsString()
			if !ok {
				return nil, errCoerce
			}
			out[i] = s
		}
		return out, nil

	case List:
		if items, ok := v.AsList(); ok {
			return items, nil
		}

	case Map:
		if m, ok := v.AsMap(); ok {
			return m, nil
		}

	case Time:
		return coerceTime(v)
	}

	return nil, errCoerce
}

// coerceTime accepts date strings in any layout dateparse recognises
// (interpreted as UTC when they carry no zone) and unix timestamps in
// seconds.
func coerceTime(v value.Value) (interface{}, error) {
	if s, ok := v.AsString(); ok {
		ts, err := dateparse.ParseIn(s, time.UTC)
		if err != nil {
			return nil, errCoerce
		}
		return ts.UTC(), nil
	}

	if sec, ok := v.AsInt(); ok {
		return time.Unix(sec, 0).UTC(), nil
	}

	if f, ok := v.AsFloat(); ok && !math.IsNaN(f) && !math.IsInf(f, 0) {
		whole, frac := math.Modf(f)
		return time.Unix(int64(whole), int64(frac*1e9)).UTC(), nil
	}

	return nil, errCoerce
}

// describe names the actual type of a value for mismatch errors
func describe(v value.Value) string {
	switch v.Kind() {
	case value.KindNumber:
		if v.IsInt() {
			return "integer"
		}
		return "real"
	default:
		return v.Kind().String()
	}
}
