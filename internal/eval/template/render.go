package template

import (
	"errors"
	"strconv"
	"strings"

	"github.com/aymerick/raymond"
	"github.com/aymerick/raymond/ast"

	"github.com/aescanero/dago-hbs-render/internal/helper"
	"github.com/aescanero/dago-hbs-render/internal/value"
)

// renderer walks one parsed program for one render call
type renderer struct {
	registry *helper.Registry
	strict   bool
	root     value.Value
}

func (r *renderer) program(out *strings.Builder, program *ast.Program, f *frame) error {
	if program == nil {
		return nil
	}

	for _, node := range program.Body {
		if err := r.statement(out, node, f); err != nil {
			return err
		}
	}

	return nil
}

func (r *renderer) statement(out *strings.Builder, node ast.Node, f *frame) error {
	switch n := node.(type) {
	case *ast.ContentStatement:
		out.WriteString(n.Value)
		return nil

	case *ast.CommentStatement:
		return nil

	case *ast.MustacheStatement:
		return r.mustache(out, n, f)

	case *ast.BlockStatement:
		return r.block(out, n, f)

	case *ast.PartialStatement:
		return helper.RenderErrorf(line(n), "partials are not supported")

	default:
		return helper.RenderErrorf(line(node), "unsupported statement %s", node.String())
	}
}

func (r *renderer) mustache(out *strings.Builder, n *ast.MustacheStatement, f *frame) error {
	lookup, err := r.expression(n.Expression, f)
	if err != nil {
		return err
	}

	v, ok := lookup.Value()
	if !ok {
		if r.strict {
			return r.unresolved(n.Expression.Path)
		}
		return nil
	}

	if n.Unescaped {
		out.WriteString(v.String())
	} else {
		out.WriteString(raymond.Escape(v.String()))
	}

	return nil
}

func (r *renderer) block(out *strings.Builder, n *ast.BlockStatement, f *frame) error {
	expr := n.Expression

	switch helperName(expr) {
	case "if":
		return r.conditional(out, n, f, false)
	case "unless":
		return r.conditional(out, n, f, true)
	case "each":
		return r.each(out, n, f)
	case "with":
		return r.with(out, n, f)
	}

	// Value section: {{#items}}...{{/items}} or {{#helper args}}...{{/helper}}
	lookup, err := r.expression(expr, f)
	if err != nil {
		return err
	}

	v, ok := lookup.Value()
	if !ok {
		if r.strict {
			return r.unresolved(expr.Path)
		}
		return r.program(out, n.Inverse, f)
	}

	switch {
	case !value.Truthy(v, false):
		return r.program(out, n.Inverse, f)
	case v.Kind() == value.KindList:
		return r.iterate(out, n, f, v)
	case v.Kind() == value.KindBool:
		return r.program(out, n.Program, f)
	default:
		return r.program(out, n.Program, f.child(v, blockParams(n), v))
	}
}

// conditional renders #if and #unless. includeZero=true puts zero among the
// truthy values, as for the or helper.
func (r *renderer) conditional(out *strings.Builder, n *ast.BlockStatement, f *frame, negate bool) error {
	cond, err := r.blockArgument(n, f)
	if err != nil {
		return err
	}

	kw, err := r.hash(n.Expression, f)
	if err != nil {
		return err
	}

	includeZero := false
	for name, v := range kw {
		if name != "includeZero" {
			return r.located(&helper.Error{Kind: helper.KindArity, Helper: helperName(n.Expression), Param: name, Index: -1}, n)
		}
		includeZero = value.Truthy(v, false)
	}

	if value.Truthy(cond, includeZero) != negate {
		return r.program(out, n.Program, f)
	}
	return r.program(out, n.Inverse, f)
}

func (r *renderer) each(out *strings.Builder, n *ast.BlockStatement, f *frame) error {
	v, err := r.blockArgument(n, f)
	if err != nil {
		return err
	}

	switch v.Kind() {
	case value.KindList:
		return r.iterate(out, n, f, v)

	case value.KindMap:
		keys := v.Keys()
		if len(keys) == 0 {
			return r.program(out, n.Inverse, f)
		}
		for i, key := range keys {
			item, _ := v.Field(key)
			c := f.child(item, blockParams(n), item, value.String(key))
			c.vars = loopVars(i, len(keys))
			c.vars["key"] = value.String(key)
			if err := r.program(out, n.Program, c); err != nil {
				return err
			}
		}
		return nil

	default:
		return r.program(out, n.Inverse, f)
	}
}

func (r *renderer) iterate(out *strings.Builder, n *ast.BlockStatement, f *frame, list value.Value) error {
	items, _ := list.AsList()
	if len(items) == 0 {
		return r.program(out, n.Inverse, f)
	}

	for i, item := range items {
		c := f.child(item, blockParams(n), item, value.Int(int64(i)))
		c.vars = loopVars(i, len(items))
		if err := r.program(out, n.Program, c); err != nil {
			return err
		}
	}

	return nil
}

func (r *renderer) with(out *strings.Builder, n *ast.BlockStatement, f *frame) error {
	v, err := r.blockArgument(n, f)
	if err != nil {
		return err
	}

	if !value.Truthy(v, false) {
		return r.program(out, n.Inverse, f)
	}
	return r.program(out, n.Program, f.child(v, blockParams(n), v))
}

// blockArgument evaluates the single argument of a built-in block
func (r *renderer) blockArgument(n *ast.BlockStatement, f *frame) (value.Value, error) {
	name := helperName(n.Expression)
	if len(n.Expression.Params) != 1 {
		return value.Value{}, helper.RenderErrorf(line(n), "#%s requires exactly one argument, got %d", name, len(n.Expression.Params))
	}

	lookup, err := r.param(n.Expression.Params[0], f)
	if err != nil {
		return value.Value{}, err
	}

	v, ok := lookup.Value()
	if !ok && r.strict {
		return value.Value{}, r.unresolved(n.Expression.Params[0])
	}
	return v, nil
}

// expression evaluates a mustache or block expression. A simple identifier
// naming a registered helper is a helper call even without arguments;
// anything with arguments must name a helper.
func (r *renderer) expression(expr *ast.Expression, f *frame) (value.Lookup, error) {
	name := helperName(expr)
	hasArgs := len(expr.Params) > 0 || (expr.Hash != nil && len(expr.Hash.Pairs) > 0)

	if name != "" && (hasArgs || r.registry.Has(name)) {
		return r.call(name, expr, f)
	}

	if hasArgs {
		return value.Lookup{}, helper.RenderErrorf(line(expr), "%s is not a helper", expr.Path.String())
	}

	return r.param(expr.Path, f)
}

// call evaluates a helper invocation. Positional paths keep their absence so
// the binder can tell a missing argument from a falsy one.
func (r *renderer) call(name string, expr *ast.Expression, f *frame) (value.Lookup, error) {
	positional := make([]value.Lookup, len(expr.Params))
	for i, p := range expr.Params {
		lookup, err := r.param(p, f)
		if err != nil {
			return value.Lookup{}, err
		}
		positional[i] = lookup
	}

	kw, err := r.hash(expr, f)
	if err != nil {
		return value.Lookup{}, err
	}

	out, err := r.registry.Evaluate(name, positional, kw)
	if err != nil {
		return value.Lookup{}, r.located(err, expr)
	}

	return value.Present(out), nil
}

// hash evaluates keyword arguments. An unresolved keyword value is left out
// so its default applies, or is an error in strict mode.
func (r *renderer) hash(expr *ast.Expression, f *frame) (map[string]value.Value, error) {
	if expr.Hash == nil || len(expr.Hash.Pairs) == 0 {
		return nil, nil
	}

	kw := make(map[string]value.Value, len(expr.Hash.Pairs))
	for _, pair := range expr.Hash.Pairs {
		lookup, err := r.param(pair.Val, f)
		if err != nil {
			return nil, err
		}

		v, ok := lookup.Value()
		if !ok {
			if r.strict {
				return nil, r.unresolved(pair.Val)
			}
			continue
		}
		kw[pair.Key] = v
	}

	return kw, nil
}

// param evaluates one argument node
func (r *renderer) param(node ast.Node, f *frame) (value.Lookup, error) {
	switch n := node.(type) {
	case *ast.StringLiteral:
		return value.Present(value.String(n.Value)), nil

	case *ast.BooleanLiteral:
		return value.Present(value.Bool(n.Value)), nil

	case *ast.NumberLiteral:
		// integers are read from the source text; Value is a float64
		i, err := strconv.ParseInt(n.Original, 10, 64)
		switch {
		case err == nil:
			return value.Present(value.Int(i)), nil
		case errors.Is(err, strconv.ErrRange):
			return value.Lookup{}, helper.RenderErrorf(line(n), "integer literal %s out of range", n.Original)
		}
		return value.Present(value.Float(n.Value)), nil

	case *ast.PathExpression:
		return r.resolve(n, f), nil

	case *ast.SubExpression:
		name := helperName(n.Expression)
		if name == "" {
			return value.Lookup{}, helper.RenderErrorf(line(n), "subexpression %s does not name a helper", n.Expression.Path.String())
		}
		return r.call(name, n.Expression, f)

	default:
		return value.Lookup{}, helper.RenderErrorf(line(node), "unsupported argument %s", node.String())
	}
}

func (r *renderer) unresolved(node ast.Node) error {
	name := node.String()
	if path, ok := node.(*ast.PathExpression); ok {
		name = path.Original
	}
	return helper.RenderErrorf(line(node), "unresolved identifier %q", name)
}

// located stamps the template line onto a helper error
func (r *renderer) located(err error, node ast.Node) error {
	var herr *helper.Error
	if errors.As(err, &herr) && herr.Line == 0 {
		herr.Line = line(node)
	}
	return err
}

// helperName returns the name of a simple single-segment identifier, or ""
func helperName(expr *ast.Expression) string {
	path, ok := expr.Path.(*ast.PathExpression)
	if !ok || path.Data || path.Scoped || path.Depth > 0 || len(path.Parts) != 1 {
		return ""
	}
	return path.Parts[0]
}

func blockParams(n *ast.BlockStatement) []string {
	if n.Program == nil {
		return nil
	}
	return n.Program.BlockParams
}

func loopVars(i, n int) map[string]value.Value {
	return map[string]value.Value{
		"index": value.Int(int64(i)),
		"first": value.Bool(i == 0),
		"last":  value.Bool(i == n-1),
	}
}

func line(node ast.Node) int {
	return node.Location().Line
}
