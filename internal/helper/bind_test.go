package helper

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aescanero/dago-hbs-render/internal/value"
)

func present(vs ...value.Value) []value.Lookup {
	out := make([]value.Lookup, len(vs))
	for i, v := range vs {
		out[i] = value.Present(v)
	}
	return out
}

var addSpec = Spec{
	Name:   "add",
	Params: []Param{Pos("a", Int), Pos("b", Int)},
}

func TestBind_Positional(t *testing.T) {
	b, err := Bind(addSpec, present(value.Int(10), value.Float(20)), nil)
	require.NoError(t, err)

	assert.Equal(t, "add", b.Helper)
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, int64(10), b.Int(0))
	assert.Equal(t, int64(20), b.Int(1), "integral reals coerce to integers")
}

func TestBind_Arity(t *testing.T) {
	tests := []struct {
		name     string
		args     []value.Lookup
		expected string
	}{
		{name: "too few", args: present(value.Int(1)), expected: "2"},
		{name: "too many", args: present(value.Int(1), value.Int(2), value.Int(3)), expected: "2"},
		{name: "none", args: nil, expected: "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Bind(addSpec, tt.args, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrArity))

			var herr *Error
			require.True(t, errors.As(err, &herr))
			assert.Equal(t, "add", herr.Helper)
			assert.Equal(t, tt.expected, herr.Expected)
		})
	}
}

func TestBind_Variadic(t *testing.T) {
	spec := Spec{Name: "and", Params: []Param{Pos("a", Any), Pos("b", Any)}, Variadic: true}

	b, err := Bind(spec, present(value.Bool(true), value.Bool(true), value.Int(0), value.String("x")), nil)
	require.NoError(t, err)
	assert.Len(t, b.Rest(), 2)

	_, err = Bind(spec, present(value.Bool(true)), nil)
	require.Error(t, err)
	var herr *Error
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, KindArity, herr.Kind)
	assert.Equal(t, "at least 2", herr.Expected)

	_, err = Bind(spec, []value.Lookup{value.Present(value.Null()), value.Present(value.Null()), value.Absent()}, nil)
	require.Error(t, err)
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, KindMissingParameter, herr.Kind)
	assert.Equal(t, 2, herr.Index)
}

func TestBind_MissingParameter(t *testing.T) {
	_, err := Bind(addSpec, []value.Lookup{value.Present(value.Int(1)), value.Absent()}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingParameter))

	var herr *Error
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, "add", herr.Helper)
	assert.Equal(t, "b", herr.Param)
	assert.Equal(t, 1, herr.Index)
	assert.Contains(t, err.Error(), `missing parameter "b" (argument 2)`)
}

func TestBind_MaybeAcceptsAbsence(t *testing.T) {
	spec := Spec{Name: "isdef", Params: []Param{Pos("x", Maybe)}}

	b, err := Bind(spec, []value.Lookup{value.Absent()}, nil)
	require.NoError(t, err)
	assert.True(t, value.IsMissing(b.Lookup(0)))
	assert.True(t, b.Value(0).IsNull())

	b, err = Bind(spec, present(value.Null()), nil)
	require.NoError(t, err)
	assert.False(t, value.IsMissing(b.Lookup(0)))
}

func TestBind_TypeMismatch(t *testing.T) {
	tests := []struct {
		name     string
		typ      ParamType
		arg      value.Value
		expected string
		actual   string
	}{
		{name: "string for integer", typ: Int, arg: value.String("10"), expected: "integer", actual: "string"},
		{name: "fraction for integer", typ: Int, arg: value.Float(1.5), expected: "integer", actual: "real"},
		{name: "negative count", typ: Count, arg: value.Int(-1), expected: "non-negative integer", actual: "integer"},
		{name: "number for boolean", typ: Bool, arg: value.Int(1), expected: "boolean", actual: "integer"},
		{name: "null for string", typ: String, arg: value.Null(), expected: "string", actual: "null"},
		{name: "mixed string list", typ: StringList, arg: value.List(value.String("a"), value.Int(1)), expected: "string list", actual: "list"},
		{name: "map for list", typ: List, arg: value.Map(nil), expected: "list", actual: "map"},
		{name: "bad date", typ: Time, arg: value.String("not a date"), expected: "timestamp", actual: "string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := Spec{Name: "h", Params: []Param{Pos("p", tt.typ)}}
			_, err := Bind(spec, present(tt.arg), nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrTypeMismatch))

			var herr *Error
			require.True(t, errors.As(err, &herr))
			assert.Equal(t, "h", herr.Helper)
			assert.Equal(t, "p", herr.Param)
			assert.Equal(t, tt.expected, herr.Expected)
			assert.Equal(t, tt.actual, herr.Actual)
		})
	}
}

func TestBind_Coercions(t *testing.T) {
	spec := Spec{
		Name: "h",
		Params: []Param{
			Pos("b", Bool),
			Pos("r", Real),
			Pos("s", String),
			Pos("l", StringList),
			Pos("t", Time),
			Pos("u", Time),
			Pos("m", Map),
		},
	}

	b, err := Bind(spec, present(
		value.Bool(true),
		value.Int(2),
		value.String("x"),
		value.Strings([]string{"a", "b"}),
		value.String("2024-03-01T10:20:30Z"),
		value.Int(0),
		value.Map(map[string]value.Value{"k": value.Int(1)}),
	), nil)
	require.NoError(t, err)

	assert.True(t, b.Bool(0))
	assert.Equal(t, 2.0, b.Float(1))
	assert.Equal(t, "x", b.String(2))
	assert.Equal(t, []string{"a", "b"}, b.Strings(3))
	assert.Equal(t, time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC), b.Time(4))
	assert.Equal(t, time.Unix(0, 0).UTC(), b.Time(5))
	assert.Len(t, b.Map(6), 1)

	// Wrong accessor yields the zero value
	assert.Equal(t, int64(0), b.Int(2))
	assert.Equal(t, "", b.String(99))
}

func TestBind_Keywords(t *testing.T) {
	spec := Spec{
		Name:     "or",
		Params:   []Param{Pos("a", Any), Pos("b", Any)},
		Keywords: []Keyword{Kw("includeZero", Bool, value.Bool(false))},
	}

	b, err := Bind(spec, present(value.Int(0), value.Int(0)), nil)
	require.NoError(t, err)
	assert.False(t, b.KeywordBool("includeZero"), "default substituted")

	b, err = Bind(spec, present(value.Int(0), value.Int(0)), map[string]value.Value{"includeZero": value.Bool(true)})
	require.NoError(t, err)
	assert.True(t, b.KeywordBool("includeZero"))

	_, err = Bind(spec, present(value.Int(0), value.Int(0)), map[string]value.Value{"includeZero": value.String("yes")})
	require.Error(t, err)
	var herr *Error
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, KindTypeMismatch, herr.Kind)
	assert.Equal(t, "includeZero", herr.Param)
	assert.Equal(t, -1, herr.Index)

	_, err = Bind(spec, present(value.Int(0), value.Int(0)), map[string]value.Value{"bogus": value.Int(1)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrArity))
	assert.Contains(t, err.Error(), `unexpected keyword "bogus"`)
}

func TestBind_ExtraKeywords(t *testing.T) {
	spec := Spec{Name: "expr", Params: []Param{Pos("e", String)}, ExtraKeywords: true}

	b, err := Bind(spec, present(value.String("a + b")), map[string]value.Value{
		"a": value.Int(1),
		"b": value.Int(2),
	})
	require.NoError(t, err)

	extra := b.Extra()
	assert.Len(t, extra, 2)
	assert.Equal(t, "2", extra["b"].String())
}

func TestBind_DynamicDefault(t *testing.T) {
	calls := 0
	spec := Spec{
		Name:   "now",
		Params: []Param{Pos("format", String)},
		Keywords: []Keyword{DynamicKw("at", Time, func() value.Value {
			calls++
			return value.Int(int64(calls))
		})},
	}

	b1, err := Bind(spec, present(value.String("%s")), nil)
	require.NoError(t, err)
	b2, err := Bind(spec, present(value.String("%s")), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, calls, "dynamic defaults are recomputed per call")
	assert.True(t, b2.KeywordTime("at").After(b1.KeywordTime("at")))

	_, err = Bind(spec, present(value.String("%s")), map[string]value.Value{"at": value.Int(5)})
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "explicit value skips the default")
}
