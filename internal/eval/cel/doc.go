// Package cel provides a CEL (Common Expression Language) evaluator for the
// expr template helper.
//
// CEL is a non-Turing complete expression language that provides fast, safe
// evaluation of small computations a template cannot express with helpers
// alone. Variables are supplied as template values and the result comes back
// as a template value.
//
// Example usage:
//
//	evaluator := cel.NewEvaluator()
//
//	vars := map[string]value.Value{
//	    "priority": value.String("high"),
//	    "score":    value.Float(0.95),
//	}
//
//	result, err := evaluator.Evaluate(ctx, "priority == 'high' && score > 0.8", vars)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result.String() // "true"
//
// In a template the same expression reads:
//
//	{{expr "priority == 'high' && score > 0.8" priority=ticket.priority score=ticket.score}}
//
// Supported operations:
//   - Comparisons: ==, !=, <, <=, >, >=
//   - Boolean logic: &&, ||, !
//   - String operations: contains, startsWith, endsWith, matches
//   - Arithmetic: +, -, *, /, %
//   - List operations: in, size
//   - Map access: ticket.field, ticket["field"]
package cel
