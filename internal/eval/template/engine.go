package template

import (
	"strings"
	"sync"

	"github.com/aymerick/raymond/ast"
	"github.com/aymerick/raymond/parser"
	"go.uber.org/zap"

	"github.com/aescanero/dago-hbs-render/internal/helper"
	"github.com/aescanero/dago-hbs-render/internal/value"
)

// Engine renders Handlebars templates, calling into a helper registry for
// every helper invocation
type Engine struct {
	registry *helper.Registry
	strict   bool
	devMode  bool
	logger   *zap.Logger

	cache map[string]*ast.Program
	mu    sync.RWMutex
}

// Option configures an Engine
type Option func(*Engine)

// WithStrict makes references to undefined identifiers render errors
func WithStrict(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

// WithDevMode disables the compiled template cache
func WithDevMode(devMode bool) Option {
	return func(e *Engine) {
		e.devMode = devMode
	}
}

// WithLogger sets the logger used for cache events
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates a new template engine
func NewEngine(registry *helper.Registry, opts ...Option) *Engine {
	engine := &Engine{
		registry: registry,
		logger:   zap.NewNop(),
		cache:    make(map[string]*ast.Program),
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// Strict reports whether the engine renders in strict mode by default
func (e *Engine) Strict() bool {
	return e.strict
}

// Render renders a template with the given data using the engine's mode
func (e *Engine) Render(templateStr string, data value.Value) (string, error) {
	return e.Exec(templateStr, data, e.strict)
}

// Exec renders a template with the given data, overriding strict mode
func (e *Engine) Exec(templateStr string, data value.Value, strict bool) (string, error) {
	// Get or compile template
	program, err := e.getProgram(templateStr)
	if err != nil {
		return "", err
	}

	// Walk the program
	r := &renderer{
		registry: e.registry,
		strict:   strict,
		root:     data,
	}
	var out strings.Builder
	if err := r.program(&out, program, newFrame(data, nil)); err != nil {
		return "", err
	}

	return out.String(), nil
}

// getProgram gets a parsed template from cache or parses it
func (e *Engine) getProgram(templateStr string) (*ast.Program, error) {
	if e.devMode {
		return parse(templateStr)
	}

	// Check cache first (read lock)
	e.mu.RLock()
	if program, ok := e.cache[templateStr]; ok {
		e.mu.RUnlock()
		return program, nil
	}
	e.mu.RUnlock()

	// Compile the template (write lock)
	e.mu.Lock()
	defer e.mu.Unlock()

	// Check again in case another goroutine compiled it
	if program, ok := e.cache[templateStr]; ok {
		return program, nil
	}

	program, err := parse(templateStr)
	if err != nil {
		return nil, err
	}

	// Cache the template
	e.cache[templateStr] = program
	e.logger.Debug("Template compiled", zap.Int("cached", len(e.cache)))

	return program, nil
}

// ValidateTemplate validates a template without rendering it
func (e *Engine) ValidateTemplate(templateStr string) error {
	_, err := parse(templateStr)
	return err
}

// ClearCache clears the compiled template cache
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]*ast.Program)
}

func parse(templateStr string) (*ast.Program, error) {
	program, err := parser.Parse(templateStr)
	if err != nil {
		return nil, helper.SyntaxError(err)
	}
	return program, nil
}
