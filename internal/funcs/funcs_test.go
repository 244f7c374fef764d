package funcs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aescanero/dago-hbs-render/internal/helper"
	"github.com/aescanero/dago-hbs-render/internal/value"
)

// call evaluates a built-in helper with present positional arguments
func call(t *testing.T, name string, kw map[string]value.Value, args ...value.Value) (value.Value, error) {
	t.Helper()
	positional := make([]value.Lookup, len(args))
	for i, a := range args {
		positional[i] = value.Present(a)
	}
	return NewRegistry().Evaluate(name, positional, kw)
}

// mustCall is call for invocations expected to succeed
func mustCall(t *testing.T, name string, kw map[string]value.Value, args ...value.Value) value.Value {
	t.Helper()
	out, err := call(t, name, kw, args...)
	require.NoError(t, err)
	return out
}

func requireKind(t *testing.T, err error, kind helper.ErrorKind) *helper.Error {
	t.Helper()
	require.Error(t, err)
	var herr *helper.Error
	require.True(t, errors.As(err, &herr), "expected *helper.Error, got %T", err)
	assert.Equal(t, kind, herr.Kind, err.Error())
	return herr
}

func TestNewRegistry_Names(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{
		"and", "or", "not", "xor",
		"isdef", "isundef", "isdef_pass",
		"eq", "ne", "gt", "lt", "contains", "default", "len",
		"add", "sub", "mul", "div", "mod", "max", "min", "floor", "ceil", "round", "rand_int",
		"upper", "lower", "uppercase", "lowercase", "trim", "trunc", "abbrev", "plural",
		"join", "split", "splitn", "sort_alpha", "trim_prefix", "trim_suffix", "trim_all",
		"date_format", "now",
	} {
		assert.True(t, r.Has(name), name)
	}
	assert.False(t, r.Has("expr"), "expr needs an evaluator")
}

func TestRegister_OverridesBuiltins(t *testing.T) {
	r := NewRegistry()
	r.Register("upper", helper.Spec{Params: []helper.Param{helper.Pos("s", helper.String)}}, func(args *helper.Bound) (value.Value, error) {
		return value.String("custom"), nil
	})

	out, err := r.Evaluate("upper", []value.Lookup{value.Present(value.String("x"))}, nil)
	require.NoError(t, err)
	assert.Equal(t, "custom", out.String())
}
