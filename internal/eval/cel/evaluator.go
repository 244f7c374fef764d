package cel

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"

	"github.com/aescanero/dago-hbs-render/internal/value"
)

// Evaluator evaluates CEL expressions
type Evaluator struct {
	env   *cel.Env
	cache map[string]cel.Program
	mu    sync.RWMutex
}

// NewEvaluator creates a new CEL evaluator
func NewEvaluator() *Evaluator {
	// Create the base CEL environment; variables are declared per call
	env, err := cel.NewEnv()
	if err != nil {
		panic(fmt.Sprintf("failed to create CEL environment: %v", err))
	}

	return &Evaluator{
		env:   env,
		cache: make(map[string]cel.Program),
	}
}

// Evaluate evaluates a CEL expression with the given variables
func (e *Evaluator) Evaluate(ctx context.Context, expression string, vars map[string]value.Value) (value.Value, error) {
	names := variableNames(vars)

	// Get or compile program
	program, err := e.getProgram(expression, names)
	if err != nil {
		return value.Value{}, fmt.Errorf("failed to compile expression: %w", err)
	}

	activation := make(map[string]interface{}, len(vars))
	for name, v := range vars {
		activation[name] = v.Native()
	}

	// Evaluate the program
	out, _, err := program.ContextEval(ctx, activation)
	if err != nil {
		return value.Value{}, fmt.Errorf("evaluation failed: %w", err)
	}

	// Convert CEL value to a template value
	result, err := toValue(out)
	if err != nil {
		return value.Value{}, fmt.Errorf("failed to convert result: %w", err)
	}

	return result, nil
}

// getProgram gets a compiled program from cache or compiles it
func (e *Evaluator) getProgram(expression string, names []string) (cel.Program, error) {
	key := strings.Join(names, ",") + "\x00" + expression

	// Check cache first (read lock)
	e.mu.RLock()
	if program, ok := e.cache[key]; ok {
		e.mu.RUnlock()
		return program, nil
	}
	e.mu.RUnlock()

	// Compile the expression (write lock)
	e.mu.Lock()
	defer e.mu.Unlock()

	// Check again in case another goroutine compiled it
	if program, ok := e.cache[key]; ok {
		return program, nil
	}

	env, err := e.extend(names)
	if err != nil {
		return nil, err
	}

	// Parse and check the expression
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("parse error: %w", issues.Err())
	}

	// Generate the program
	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program generation error: %w", err)
	}

	// Cache the program
	e.cache[key] = program

	return program, nil
}

// extend declares each variable name as a dynamically-typed CEL variable
func (e *Evaluator) extend(names []string) (*cel.Env, error) {
	if len(names) == 0 {
		return e.env, nil
	}

	opts := make([]cel.EnvOption, len(names))
	for i, name := range names {
		opts[i] = cel.Variable(name, cel.DynType)
	}

	env, err := e.env.Extend(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to declare variables: %w", err)
	}
	return env, nil
}

// ValidateExpression validates a CEL expression without evaluating it
func (e *Evaluator) ValidateExpression(expression string, names ...string) error {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	env, err := e.extend(sorted)
	if err != nil {
		return err
	}

	_, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return issues.Err()
	}

	return nil
}

// ClearCache clears the compiled program cache
func (e *Evaluator) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]cel.Program)
}

func variableNames(vars map[string]value.Value) []string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// toValue converts a CEL result into a template value
func toValue(v ref.Val) (value.Value, error) {
	switch x := v.(type) {
	case types.Bool:
		return value.Bool(bool(x)), nil
	case types.Int:
		return value.Int(int64(x)), nil
	case types.Uint:
		if uint64(x) > math.MaxInt64 {
			return value.Float(float64(x)), nil
		}
		return value.Int(int64(x)), nil
	case types.Double:
		return value.Float(float64(x)), nil
	case types.String:
		return value.String(string(x)), nil
	case types.Null:
		return value.Null(), nil
	case types.Timestamp:
		return value.String(x.Time.UTC().Format(time.RFC3339Nano)), nil
	case types.Duration:
		return value.String(x.Duration.String()), nil
	case traits.Mapper:
		return mapToValue(x)
	case traits.Lister:
		return listToValue(x)
	}

	return value.Value{}, fmt.Errorf("unsupported result type %s", v.Type().TypeName())
}

func listToValue(l traits.Lister) (value.Value, error) {
	size, ok := l.Size().(types.Int)
	if !ok {
		return value.Value{}, fmt.Errorf("list has no size")
	}

	items := make([]value.Value, 0, int(size))
	for i := types.Int(0); i < size; i++ {
		item, err := toValue(l.Get(i))
		if err != nil {
			return value.Value{}, err
		}
		items = append(items, item)
	}
	return value.List(items...), nil
}

func mapToValue(m traits.Mapper) (value.Value, error) {
	out := make(map[string]value.Value)
	it := m.Iterator()
	for it.HasNext() == types.True {
		key := it.Next()
		item, err := toValue(m.Get(key))
		if err != nil {
			return value.Value{}, err
		}
		out[fmt.Sprint(key.Value())] = item
	}
	return value.Map(out), nil
}
