package template

import (
	"github.com/aymerick/raymond/ast"

	"github.com/aescanero/dago-hbs-render/internal/value"
)

// frame is one context in the scope chain. each and with push a frame; if
// and unless render in the frame they were found in.
type frame struct {
	data   value.Value
	params map[string]value.Value // block params (as |x i|)
	vars   map[string]value.Value // @index, @key, @first, @last
	parent *frame
}

func newFrame(data value.Value, parent *frame) *frame {
	return &frame{data: data, parent: parent}
}

// child pushes a new context, binding block params in declaration order
func (f *frame) child(data value.Value, blockParams []string, args ...value.Value) *frame {
	c := newFrame(data, f)
	if len(blockParams) > 0 {
		c.params = make(map[string]value.Value, len(blockParams))
		for i, name := range blockParams {
			if i < len(args) {
				c.params[name] = args[i]
			}
		}
	}
	return c
}

// up returns the frame depth levels above f, or the root frame when the
// chain is shorter
func (f *frame) up(depth int) *frame {
	cur := f
	for i := 0; i < depth && cur.parent != nil; i++ {
		cur = cur.parent
	}
	return cur
}

// dataVar finds an @variable in the nearest frame that defines it
func (f *frame) dataVar(name string) (value.Value, bool) {
	for cur := f; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return value.Value{}, false
}

// blockParam finds a block param in the nearest frame that declares it
func (f *frame) blockParam(name string) (value.Value, bool) {
	for cur := f; cur != nil; cur = cur.parent {
		if v, ok := cur.params[name]; ok {
			return v, true
		}
	}
	return value.Value{}, false
}

// resolve looks a path expression up against the scope chain.
//
// Unscoped identifiers are searched in block params, then in the current
// context, then in each enclosing context up to the root. Scoped paths
// (this.x, ./x, ../x) only look in the context they name.
func (r *renderer) resolve(path *ast.PathExpression, f *frame) value.Lookup {
	parts := path.Parts

	var (
		cur value.Value
		ok  bool
	)

	switch {
	case path.Data:
		if len(parts) == 0 {
			return value.Absent()
		}
		if parts[0] == "root" {
			cur, ok = r.root, true
		} else {
			cur, ok = f.dataVar(parts[0])
		}
		parts = parts[1:]

	case len(parts) == 0:
		// this, ., ../
		cur, ok = f.up(path.Depth).data, true

	case path.Scoped || path.Depth > 0:
		cur, ok = field(f.up(path.Depth).data, parts[0])
		parts = parts[1:]

	default:
		cur, ok = f.blockParam(parts[0])
		for scope := f; !ok && scope != nil; scope = scope.parent {
			cur, ok = field(scope.data, parts[0])
		}
		parts = parts[1:]
	}

	if !ok {
		return value.Absent()
	}

	for _, part := range parts {
		if cur, ok = field(cur, part); !ok {
			return value.Absent()
		}
	}

	return value.Present(cur)
}

// field resolves one path segment. length is answered for lists and strings
// that have no such key.
func field(v value.Value, name string) (value.Value, bool) {
	if e, ok := v.Field(name); ok {
		return e, true
	}
	if name == "length" && (v.Kind() == value.KindList || v.Kind() == value.KindString) {
		return value.Int(int64(v.Len())), true
	}
	return value.Value{}, false
}
