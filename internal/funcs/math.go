package funcs

import (
	"math"
	"math/rand/v2"

	"github.com/aescanero/dago-hbs-render/internal/helper"
	"github.com/aescanero/dago-hbs-render/internal/value"
)

type intOp func(a, b int64) (int64, error)

func registerMath(r *helper.Registry) {
	ints := map[string]intOp{
		"add": addInt,
		"sub": subInt,
		"mul": mulInt,
		"div": divInt,
		"mod": modInt,
		"max": func(a, b int64) (int64, error) { return max(a, b), nil },
		"min": func(a, b int64) (int64, error) { return min(a, b), nil },
	}
	for name, op := range ints {
		r.Register(name, helper.Spec{
			Params: []helper.Param{helper.Pos("a", helper.Int), helper.Pos("b", helper.Int)},
		}, binaryInt(op))
	}

	reals := map[string]func(float64) float64{
		"floor": math.Floor,
		"ceil":  math.Ceil,
		"round": math.Round,
	}
	for name, fn := range reals {
		r.Register(name, helper.Spec{
			Params: []helper.Param{helper.Pos("a", helper.Real)},
		}, unaryReal(fn))
	}

	// Nondeterministic: never cache its output
	r.Register("rand_int", helper.Spec{
		Keywords:    []helper.Keyword{helper.Kw("max", helper.Count, value.Int(0))},
		Description: "pseudo-random non-negative integer, below max when max > 0",
	}, randInt)
}

func binaryInt(op intOp) helper.Func {
	return func(args *helper.Bound) (value.Value, error) {
		out, err := op(args.Int(0), args.Int(1))
		if err != nil {
			return value.Value{}, err
		}
		return value.Int(out), nil
	}
}

func unaryReal(fn func(float64) float64) helper.Func {
	return func(args *helper.Bound) (value.Value, error) {
		return value.Float(fn(args.Float(0))), nil
	}
}

func addInt(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, helper.Failf("integer overflow: %d + %d", a, b)
	}
	return a + b, nil
}

func subInt(a, b int64) (int64, error) {
	if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
		return 0, helper.Failf("integer overflow: %d - %d", a, b)
	}
	return a - b, nil
}

func mulInt(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	p := a * b
	if p/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, helper.Failf("integer overflow: %d * %d", a, b)
	}
	return p, nil
}

func divInt(a, b int64) (int64, error) {
	if b == 0 {
		return 0, helper.Failf("division by zero")
	}
	if a == math.MinInt64 && b == -1 {
		return 0, helper.Failf("integer overflow: %d / %d", a, b)
	}
	return a / b, nil
}

func modInt(a, b int64) (int64, error) {
	if b == 0 {
		return 0, helper.Failf("modulo by zero")
	}
	return a % b, nil
}

func randInt(args *helper.Bound) (value.Value, error) {
	if n := args.KeywordInt("max"); n > 0 {
		return value.Int(rand.Int64N(n)), nil
	}
	return value.Int(rand.Int64()), nil
}
