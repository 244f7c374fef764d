package helper

import (
	"fmt"
	"sort"
	"time"

	"github.com/aescanero/dago-hbs-render/internal/value"
)

// boundArg keeps the raw lookup next to its coerced form
type boundArg struct {
	lookup  value.Lookup
	coerced interface{}
}

// Bound holds the arguments of one helper invocation after binding.
// Typed accessors return the zero value when asked for a type the parameter
// was not declared with.
type Bound struct {
	Helper string

	args  []boundArg
	kw    map[string]boundArg
	rest  []value.Value
	extra map[string]value.Value
}

// Bind matches call-site arguments to spec.
//
// positional holds one Lookup per positional argument; literals and resolved
// paths are Present, unresolved paths Absent. keyword holds the hash
// arguments. Bind never panics: every ill-formed call yields an *Error.
func Bind(spec Spec, positional []value.Lookup, keyword map[string]value.Value) (*Bound, error) {
	required := len(spec.Params)

	// Check arity
	if spec.Variadic {
		if len(positional) < required {
			return nil, arityError(spec.Name, fmt.Sprintf("at least %d", required), len(positional))
		}
	} else if len(positional) != required {
		return nil, arityError(spec.Name, fmt.Sprint(required), len(positional))
	}

	b := &Bound{
		Helper: spec.Name,
		args:   make([]boundArg, required),
		kw:     make(map[string]boundArg, len(spec.Keywords)),
	}

	// Required parameters, in declared order
	for i, p := range spec.Params {
		actual := positional[i]
		v, ok := actual.Value()
		if !ok {
			if p.Type != Maybe {
				return nil, missingParameter(spec.Name, p.Name, i)
			}
			b.args[i] = boundArg{lookup: actual, coerced: actual}
			continue
		}

		if p.Type == Maybe {
			b.args[i] = boundArg{lookup: actual, coerced: actual}
			continue
		}

		c, err := coerce(p.Type, v)
		if err != nil {
			return nil, typeMismatch(spec.Name, p.Name, i, p.Type, describe(v))
		}
		b.args[i] = boundArg{lookup: actual, coerced: c}
	}

	// Trailing positionals of variadic helpers
	for i := required; i < len(positional); i++ {
		v, ok := positional[i].Value()
		if !ok {
			return nil, missingParameter(spec.Name, "", i)
		}
		b.rest = append(b.rest, v)
	}

	// Declared keywords: call-site value, else default
	for _, k := range spec.Keywords {
		v, ok := keyword[k.Name]
		if !ok {
			if k.Dynamic != nil {
				v = k.Dynamic()
			} else {
				v = k.Default
			}
		}

		c, err := coerce(k.Type, v)
		if err != nil {
			return nil, typeMismatch(spec.Name, k.Name, -1, k.Type, describe(v))
		}
		b.kw[k.Name] = boundArg{lookup: value.Present(v), coerced: c}
	}

	// Undeclared keywords, reported in a stable order
	names := make([]string, 0, len(keyword))
	for name := range keyword {
		if _, declared := spec.keyword(name); !declared {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		if !spec.ExtraKeywords {
			return nil, unexpectedKeyword(spec.Name, name)
		}
		if b.extra == nil {
			b.extra = make(map[string]value.Value, len(names))
		}
		b.extra[name] = keyword[name]
	}

	return b, nil
}

// Len returns the number of required positional arguments
func (b *Bound) Len() int {
	return len(b.args)
}

// Lookup returns positional argument i as resolved at the call site
func (b *Bound) Lookup(i int) value.Lookup {
	if i < 0 || i >= len(b.args) {
		return value.Absent()
	}
	return b.args[i].lookup
}

// Value returns positional argument i uncoerced, or null when absent
func (b *Bound) Value(i int) value.Value {
	return b.Lookup(i).OrNull()
}

// Bool returns a Bool parameter
func (b *Bound) Bool(i int) bool {
	v, _ := b.arg(i).(bool)
	return v
}

// Int returns an Int or Count parameter
func (b *Bound) Int(i int) int64 {
	v, _ := b.arg(i).(int64)
	return v
}

// Float returns a Real parameter
func (b *Bound) Float(i int) float64 {
	v, _ := b.arg(i).(float64)
	return v
}

// String returns a String parameter
func (b *Bound) String(i int) string {
	v, _ := b.arg(i).(string)
	return v
}

// Strings returns a StringList parameter
func (b *Bound) Strings(i int) []string {
	v, _ := b.arg(i).([]string)
	return v
}

// List returns a List parameter
func (b *Bound) List(i int) []value.Value {
	v, _ := b.arg(i).([]value.Value)
	return v
}

// Map returns a Map parameter
func (b *Bound) Map(i int) map[string]value.Value {
	v, _ := b.arg(i).(map[string]value.Value)
	return v
}

// Time returns a Time parameter
func (b *Bound) Time(i int) time.Time {
	v, _ := b.arg(i).(time.Time)
	return v
}

// Rest returns the trailing positionals of a variadic helper
func (b *Bound) Rest() []value.Value {
	out := make([]value.Value, len(b.rest))
	copy(out, b.rest)
	return out
}

// Extra returns the undeclared keywords of a helper accepting them
func (b *Bound) Extra() map[string]value.Value {
	out := make(map[string]value.Value, len(b.extra))
	for k, v := range b.extra {
		out[k] = v
	}
	return out
}

// Keyword returns a keyword argument uncoerced
func (b *Bound) Keyword(name string) value.Value {
	return b.kw[name].lookup.OrNull()
}

// KeywordBool returns a Bool keyword
func (b *Bound) KeywordBool(name string) bool {
	v, _ := b.kw[name].coerced.(bool)
	return v
}

// KeywordInt returns an Int or Count keyword
func (b *Bound) KeywordInt(name string) int64 {
	v, _ := b.kw[name].coerced.(int64)
	return v
}

// KeywordString returns a String keyword
func (b *Bound) KeywordString(name string) string {
	v, _ := b.kw[name].coerced.(string)
	return v
}

// KeywordTime returns a Time keyword
func (b *Bound) KeywordTime(name string) time.Time {
	v, _ := b.kw[name].coerced.(time.Time)
	return v
}

func (b *Bound) arg(i int) interface{} {
	if i < 0 || i >= len(b.args) {
		return nil
	}
	return b.args[i].coerced
}
