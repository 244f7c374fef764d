package helper

import (
	"fmt"
	"strings"

	"github.com/aescanero/dago-hbs-render/internal/value"
)

// ParamType is the semantic type a parameter is coerced to
type ParamType int

const (
	// Any accepts every present value as-is
	Any ParamType = iota
	// Maybe accepts every value and also absence, for helpers whose first
	// action is an absence check
	Maybe
	// Bool accepts booleans
	Bool
	// Int accepts integral numbers
	Int
	// Count accepts non-negative integral numbers
	Count
	// Real accepts any number
	Real
	// String accepts strings
	String
	// StringList accepts lists whose elements are all strings
	StringList
	// List accepts lists
	List
	// Map accepts maps
	Map
	// Time accepts date strings and unix timestamps
	Time
)

// String returns the type name used in signatures and errors
func (t ParamType) String() string {
	switch t {
	case Any:
		return "any"
	case Maybe:
		return "any?"
	case Bool:
		return "boolean"
	case Int:
		return "integer"
	case Count:
		return "non-negative integer"
	case Real:
		return "real"
	case String:
		return "string"
	case StringList:
		return "string list"
	case List:
		return "list"
	case Map:
		return "map"
	case Time:
		return "timestamp"
	default:
		return "unknown"
	}
}

// Param is a required positional parameter
type Param struct {
	Name string
	Type ParamType
}

// Keyword is an optional named parameter with a default.
// Default is evaluated once, when the spec is built. Dynamic, when set,
// replaces Default and is called on every binding; it is reserved for
// inherently time-varying defaults.
type Keyword struct {
	Name    string
	Type    ParamType
	Default value.Value
	Dynamic func() value.Value
}

// Spec declares what a helper accepts
type Spec struct {
	// Name is the registry key; Register sets it
	Name string

	// Params are the required positional parameters, in order
	Params []Param

	// Keywords are the optional named parameters
	Keywords []Keyword

	// Variadic accepts extra trailing positionals, bound uncoerced as Rest
	Variadic bool

	// ExtraKeywords accepts undeclared keywords, bound uncoerced as Extra
	ExtraKeywords bool

	// Description is a one-line summary shown by listings
	Description string
}

// Pos declares a positional parameter
func Pos(name string, t ParamType) Param {
	return Param{Name: name, Type: t}
}

// Kw declares a keyword parameter with a static default
func Kw(name string, t ParamType, def value.Value) Keyword {
	return Keyword{Name: name, Type: t, Default: def}
}

// DynamicKw declares a keyword parameter whose default is recomputed on
// every call
func DynamicKw(name string, t ParamType, def func() value.Value) Keyword {
	return Keyword{Name: name, Type: t, Dynamic: def}
}

// keyword finds a declared keyword by name
func (s Spec) keyword(name string) (Keyword, bool) {
	for _, k := range s.Keywords {
		if k.Name == name {
			return k, true
		}
	}
	return Keyword{}, false
}

// Signature renders the spec as a one-line usage string
func (s Spec) Signature() string {
	parts := []string{s.Name}
	for _, p := range s.Params {
		parts = append(parts, fmt.Sprintf("%s:%s", p.Name, p.Type))
	}
	if s.Variadic {
		parts = append(parts, "...")
	}
	for _, k := range s.Keywords {
		def := "<dynamic>"
		if k.Dynamic == nil {
			def = literal(k.Default)
		}
		parts = append(parts, fmt.Sprintf("%s=%s", k.Name, def))
	}
	if s.ExtraKeywords {
		parts = append(parts, "key=value...")
	}
	return strings.Join(parts, " ")
}

// validate checks that every static keyword default coerces to its type
func (s Spec) validate() error {
	seen := make(map[string]bool, len(s.Keywords))
	for _, k := range s.Keywords {
		if seen[k.Name] {
			return fmt.Errorf("keyword %q declared twice", k.Name)
		}
		seen[k.Name] = true

		if k.Dynamic != nil || k.Type == Any || k.Type == Maybe {
			continue
		}
		if _, err := coerce(k.Type, k.Default); err != nil {
			return fmt.Errorf("default for keyword %q: %w", k.Name, err)
		}
	}
	return nil
}

// literal renders a default value the way it would be written in a template
func literal(v value.Value) string {
	if s, ok := v.AsString(); ok {
		return fmt.Sprintf("%q", s)
	}
	if v.IsNull() {
		return "null"
	}
	return v.String()
}
