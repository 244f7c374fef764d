// Package template provides the Handlebars host engine.
//
// Templates are parsed with raymond's parser and the resulting AST is walked
// here, so every helper call goes through a helper.Registry and every
// identifier resolves to a value.Lookup that remembers absence.
//
// Example usage:
//
//	registry := funcs.NewRegistry()
//	engine := template.NewEngine(registry, template.WithStrict(true))
//
//	data, _ := value.ParseJSON([]byte(`{"p1": {"age": 10}, "p2": {"age": 20}}`))
//
//	result, err := engine.Render("Total: {{add p1.age p2.age}}", data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Output: Total: 30
//
// Built-in blocks:
//   - #if / #unless - Conditionals using value.Truthy; includeZero=true treats 0 as true
//   - #each - Lists and maps, with @index, @key, @first, @last and block params
//   - #with - Pushes a new context
//
// Any other block renders its value as a section: lists iterate, other
// truthy values become the context, falsy values render the else branch.
//
// Identifier resolution:
//
//	{{name}}           # block params, then the current context, then enclosing contexts
//	{{this.name}}      # current context only
//	{{../name}}        # parent context only
//	{{@root.name}}     # the data passed to Render
//	{{list.length}}    # length of a list or string
//
// In non-strict mode an unresolved identifier renders as blank. In strict mode
// it is a render error, unless it is a helper argument: helpers receive the
// absence and decide, which is how isdef and isdef_pass work under strict:
//
//	{{#if (isdef_pass user.nickname)}}{{user.nickname}}{{else}}anonymous{{/if}}
//
// Partials are not supported and fail with a render error.
//
// Compiled templates are cached by source text. WithDevMode disables the
// cache so edited templates are always re-parsed.
package template
