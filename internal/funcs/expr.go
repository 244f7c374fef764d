package funcs

import (
	"context"

	"github.com/aescanero/dago-hbs-render/internal/eval/cel"
	"github.com/aescanero/dago-hbs-render/internal/helper"
	"github.com/aescanero/dago-hbs-render/internal/value"
)

// RegisterExpr adds the expr helper, which evaluates a CEL expression with
// the call's keyword arguments as variables
func RegisterExpr(r *helper.Registry, evaluator *cel.Evaluator) {
	r.Register("expr", helper.Spec{
		Params:        []helper.Param{helper.Pos("expression", helper.String)},
		ExtraKeywords: true,
		Description:   "evaluates a CEL expression over its keyword arguments",
	}, func(args *helper.Bound) (value.Value, error) {
		out, err := evaluator.Evaluate(context.Background(), args.String(0), args.Extra())
		if err != nil {
			return value.Value{}, err
		}
		return out, nil
	})
}
