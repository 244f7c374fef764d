// Package helper implements the helper-function core: parameter specs, the
// generic argument binder, the helper registry and the error taxonomy shared
// with the host engine.
//
// A helper is a plain function over bound arguments plus a Spec describing
// what it accepts. The binder validates arity, rejects absent arguments
// unless the parameter accepts them, coerces each present value to the
// declared type and fills keyword defaults, so helper bodies never validate
// their own inputs.
//
// Example usage:
//
//	registry := helper.NewRegistry()
//	registry.Register("add", helper.Spec{
//	    Params: []helper.Param{
//	        helper.Pos("a", helper.Int),
//	        helper.Pos("b", helper.Int),
//	    },
//	}, func(args *helper.Bound) (value.Value, error) {
//	    return value.Int(args.Int(0) + args.Int(1)), nil
//	})
//
//	out, err := registry.Evaluate("add",
//	    []value.Lookup{value.Present(value.Int(10)), value.Present(value.Int(20))},
//	    nil,
//	)
//	// out.String() == "30"
//
// Registration happens once, before the first render. After that the
// registry is only read, which makes it safe to share between concurrent
// renders. Registering a name twice replaces the earlier entry, so host
// applications can override built-ins.
//
// Every failure is returned as an *Error carrying a Kind and the helper,
// parameter and type involved. The Err* sentinels match by kind:
//
//	if errors.Is(err, helper.ErrTypeMismatch) {
//	    var herr *helper.Error
//	    errors.As(err, &herr)
//	    fmt.Println(herr.Helper, herr.Param, herr.Expected, herr.Actual)
//	}
package helper
