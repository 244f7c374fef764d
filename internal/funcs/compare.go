package funcs

import (
	"strings"

	"github.com/aescanero/dago-hbs-render/internal/helper"
	"github.com/aescanero/dago-hbs-render/internal/value"
)

func registerCompare(r *helper.Registry) {
	// eq helper - deep equality, numbers compared by value
	r.Register("eq", helper.Spec{
		Params:      []helper.Param{helper.Pos("a", helper.Any), helper.Pos("b", helper.Any)},
		Description: "equality comparison",
	}, func(args *helper.Bound) (value.Value, error) {
		return value.Bool(args.Value(0).Equal(args.Value(1))), nil
	})

	// ne helper - inequality comparison
	r.Register("ne", helper.Spec{
		Params:      []helper.Param{helper.Pos("a", helper.Any), helper.Pos("b", helper.Any)},
		Description: "inequality comparison",
	}, func(args *helper.Bound) (value.Value, error) {
		return value.Bool(!args.Value(0).Equal(args.Value(1))), nil
	})

	// gt helper - greater than (for numbers)
	r.Register("gt", helper.Spec{
		Params:      []helper.Param{helper.Pos("a", helper.Real), helper.Pos("b", helper.Real)},
		Description: "greater than",
	}, func(args *helper.Bound) (value.Value, error) {
		return value.Bool(args.Float(0) > args.Float(1)), nil
	})

	// lt helper - less than (for numbers)
	r.Register("lt", helper.Spec{
		Params:      []helper.Param{helper.Pos("a", helper.Real), helper.Pos("b", helper.Real)},
		Description: "less than",
	}, func(args *helper.Bound) (value.Value, error) {
		return value.Bool(args.Float(0) < args.Float(1)), nil
	})

	// contains helper - check if string contains substring
	r.Register("contains", helper.Spec{
		Params:      []helper.Param{helper.Pos("str", helper.String), helper.Pos("substr", helper.String)},
		Description: "substring test",
	}, func(args *helper.Bound) (value.Value, error) {
		return value.Bool(strings.Contains(args.String(0), args.String(1))), nil
	})

	// default helper - return fallback if the value is unbound, null or ""
	r.Register("default", helper.Spec{
		Params:      []helper.Param{helper.Pos("value", helper.Maybe), helper.Pos("fallback", helper.Any)},
		Description: "fallback for unbound, null or empty values",
	}, func(args *helper.Bound) (value.Value, error) {
		v, ok := args.Lookup(0).Value()
		if !ok || v.IsNull() {
			return args.Value(1), nil
		}
		if s, isStr := v.AsString(); isStr && s == "" {
			return args.Value(1), nil
		}
		return v, nil
	})

	// len helper - length of a string, list or map
	r.Register("len", helper.Spec{
		Params:      []helper.Param{helper.Pos("value", helper.Any)},
		Description: "length of a string, list or map",
	}, func(args *helper.Bound) (value.Value, error) {
		return value.Int(int64(args.Value(0).Len())), nil
	})
}
