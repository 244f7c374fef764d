package helper

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aescanero/dago-hbs-render/internal/value"
)

// Func is a helper implementation. It runs on already-bound arguments and
// returns a new Value; it must not mutate its inputs.
type Func func(args *Bound) (value.Value, error)

// Entry is a registered helper
type Entry struct {
	Spec Spec
	Fn   Func
}

// Registry maps helper names to their spec and implementation.
// It is populated before the first render and only read afterwards.
type Registry struct {
	entries map[string]Entry
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Entry),
	}
}

// Register adds a helper, replacing any previous helper of the same name.
// It panics when a keyword default does not fit its declared type, which is
// a programming error caught at process start.
func (r *Registry) Register(name string, spec Spec, fn Func) {
	spec.Name = name
	if err := spec.validate(); err != nil {
		panic(fmt.Sprintf("helper %q: invalid spec: %v", name, err))
	}
	if fn == nil {
		panic(fmt.Sprintf("helper %q: nil implementation", name))
	}

	r.entries[name] = Entry{Spec: spec, Fn: fn}
}

// Lookup returns the helper registered under name
func (r *Registry) Lookup(name string) (Entry, bool) {
	entry, ok := r.entries[name]
	return entry, ok
}

// Has reports whether a helper is registered under name
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Names returns the registered helper names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Evaluate binds the call-site arguments to the named helper and runs it.
// It is the single entry point the host engine uses for helper calls.
func (r *Registry) Evaluate(name string, positional []value.Lookup, keyword map[string]value.Value) (value.Value, error) {
	entry, ok := r.entries[name]
	if !ok {
		return value.Value{}, unknownHelper(name)
	}

	args, err := Bind(entry.Spec, positional, keyword)
	if err != nil {
		return value.Value{}, err
	}

	out, err := entry.Fn(args)
	if err != nil {
		var herr *Error
		if errors.As(err, &herr) {
			// helpers may return shared errors; stamp a copy
			if err == error(herr) {
				stamped := *herr
				if stamped.Helper == "" {
					stamped.Helper = name
				}
				return value.Value{}, &stamped
			}
			return value.Value{}, &Error{Kind: herr.Kind, Helper: name, Index: -1, Err: err}
		}
		return value.Value{}, &Error{Kind: KindRuntime, Helper: name, Index: -1, Err: err}
	}

	return out, nil
}
