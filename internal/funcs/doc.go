// Package funcs provides the built-in template helpers.
//
// Every helper is a plain function over *helper.Bound plus a helper.Spec
// entry; argument validation and coercion are left to the binder.
//
// Example usage:
//
//	registry := funcs.NewRegistry()
//	engine := template.NewEngine(registry)
//
//	out, _ := engine.Render("{{add p1.age p2.age}}", data) // "30"
//
// Built-in helpers:
//
// Logic (operands go through value.Truthy):
//   - and a b ...                 - true when every operand is truthy
//   - or a b ... includeZero=false - true when any operand is truthy; with
//     includeZero=true a zero operand counts as truthy
//   - not a                       - negation
//   - xor a b                     - (a || b) && !(a && b)
//
// Existence:
//   - isdef x                     - true when x resolves to anything, null included
//   - isundef x                   - true when x has no binding
//   - isdef_pass x includeZero=false - false when x has no binding, else its truthiness
//
// Comparison:
//   - eq, ne, gt, lt, contains, default, len
//
// Math (integers unless noted):
//   - add, sub, mul, div, mod, max, min
//   - floor, ceil, round           - real numbers
//   - rand_int max=0               - pseudo-random non-negative integer
//
// Strings:
//   - upper, lower (uppercase, lowercase), trim, trunc, abbrev, plural
//   - join, split, splitn, sort_alpha
//   - trim_prefix, trim_suffix, trim_all
//
// Dates (strftime format strings):
//   - date_format format date tz="UTC" locale=""
//   - now format at=<current time> tz="UTC" locale=""
//
// Expressions (when a CEL evaluator is supplied):
//   - expr "a + b > 3" a=1 b=4
//
// rand_int and now depend on the moment they are called; they are the only
// helpers whose output is not a function of their arguments.
package funcs
