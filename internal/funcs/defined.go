package funcs

import (
	"github.com/aescanero/dago-hbs-render/internal/helper"
	"github.com/aescanero/dago-hbs-render/internal/value"
)

func registerDefined(r *helper.Registry) {
	maybe := []helper.Param{helper.Pos("x", helper.Maybe)}

	r.Register("isdef", helper.Spec{
		Params:      maybe,
		Description: "true when the argument has a binding, even null",
	}, isDefined)

	r.Register("isundef", helper.Spec{
		Params:      maybe,
		Description: "true when the argument has no binding",
	}, isUndefined)

	// includeZero=true makes a bound zero pass
	r.Register("isdef_pass", helper.Spec{
		Params:      maybe,
		Keywords:    []helper.Keyword{helper.Kw("includeZero", helper.Bool, value.Bool(false))},
		Description: "false when unbound, otherwise the argument's truthiness",
	}, isDefinedTruthy)
}

func isDefined(args *helper.Bound) (value.Value, error) {
	return value.Bool(!value.IsMissing(args.Lookup(0))), nil
}

func isUndefined(args *helper.Bound) (value.Value, error) {
	return value.Bool(value.IsMissing(args.Lookup(0))), nil
}

func isDefinedTruthy(args *helper.Bound) (value.Value, error) {
	v, ok := args.Lookup(0).Value()
	if !ok {
		return value.Bool(false), nil
	}
	return value.Bool(value.Truthy(v, args.KeywordBool("includeZero"))), nil
}
