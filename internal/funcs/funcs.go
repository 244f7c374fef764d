package funcs

import (
	"github.com/aescanero/dago-hbs-render/internal/eval/cel"
	"github.com/aescanero/dago-hbs-render/internal/helper"
)

// Option configures NewRegistry
type Option func(*options)

type options struct {
	evaluator *cel.Evaluator
}

// WithExpr registers the expr helper backed by the given CEL evaluator
func WithExpr(evaluator *cel.Evaluator) Option {
	return func(o *options) {
		o.evaluator = evaluator
	}
}

// NewRegistry creates a registry holding every built-in helper
func NewRegistry(opts ...Option) *helper.Registry {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	r := helper.NewRegistry()
	Register(r)

	if o.evaluator != nil {
		RegisterExpr(r, o.evaluator)
	}

	return r
}

// Register adds the built-in helpers to r, replacing same-named entries
func Register(r *helper.Registry) {
	registerLogic(r)
	registerDefined(r)
	registerCompare(r)
	registerMath(r)
	registerStrings(r)
	registerDates(r)
}
