package funcs

import (
	"github.com/aescanero/dago-hbs-render/internal/helper"
	"github.com/aescanero/dago-hbs-render/internal/value"
)

func registerLogic(r *helper.Registry) {
	pair := []helper.Param{helper.Pos("a", helper.Any), helper.Pos("b", helper.Any)}

	r.Register("and", helper.Spec{
		Params:      pair,
		Variadic:    true,
		Description: "true when every operand is truthy",
	}, and)

	// includeZero=true makes a zero operand truthy
	r.Register("or", helper.Spec{
		Params:      pair,
		Variadic:    true,
		Keywords:    []helper.Keyword{helper.Kw("includeZero", helper.Bool, value.Bool(false))},
		Description: "true when any operand is truthy",
	}, or)

	r.Register("not", helper.Spec{
		Params:      []helper.Param{helper.Pos("a", helper.Any)},
		Description: "negates the truthiness of its operand",
	}, not)

	r.Register("xor", helper.Spec{
		Params:      pair,
		Description: "true when exactly one operand is truthy",
	}, xor)
}

// operands returns the required operands followed by any variadic ones
func operands(args *helper.Bound) []value.Value {
	ops := make([]value.Value, 0, args.Len())
	for i := 0; i < args.Len(); i++ {
		ops = append(ops, args.Value(i))
	}
	return append(ops, args.Rest()...)
}

func and(args *helper.Bound) (value.Value, error) {
	for _, op := range operands(args) {
		if !value.Truthy(op, false) {
			return value.Bool(false), nil
		}
	}
	return value.Bool(true), nil
}

func or(args *helper.Bound) (value.Value, error) {
	includeZero := args.KeywordBool("includeZero")
	for _, op := range operands(args) {
		if value.Truthy(op, includeZero) {
			return value.Bool(true), nil
		}
	}
	return value.Bool(false), nil
}

func not(args *helper.Bound) (value.Value, error) {
	return value.Bool(!value.Truthy(args.Value(0), false)), nil
}

func xor(args *helper.Bound) (value.Value, error) {
	a := value.Truthy(args.Value(0), false)
	b := value.Truthy(args.Value(1), false)
	return value.Bool((a || b) && !(a && b)), nil
}
