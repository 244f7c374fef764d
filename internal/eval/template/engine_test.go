package template

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aescanero/dago-hbs-render/internal/funcs"
	"github.com/aescanero/dago-hbs-render/internal/helper"
	"github.com/aescanero/dago-hbs-render/internal/value"
)

func data(t *testing.T, src string) value.Value {
	t.Helper()
	v, err := value.ParseJSON([]byte(src))
	require.NoError(t, err)
	return v
}

func render(t *testing.T, tmpl, vars string, opts ...Option) (string, error) {
	t.Helper()
	return NewEngine(funcs.NewRegistry(), opts...).Render(tmpl, data(t, vars))
}

func mustRender(t *testing.T, tmpl, vars string, opts ...Option) string {
	t.Helper()
	out, err := render(t, tmpl, vars, opts...)
	require.NoError(t, err)
	return out
}

func requireKind(t *testing.T, err error, kind helper.ErrorKind) *helper.Error {
	t.Helper()
	require.Error(t, err)
	var herr *helper.Error
	require.True(t, errors.As(err, &herr), "expected *helper.Error, got %T", err)
	assert.Equal(t, kind, herr.Kind, err.Error())
	return herr
}

func TestRender_EndToEnd(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		vars string
		want string
	}{
		{name: "variable", tmpl: "{{name}}", vars: `{"name": "john"}`, want: "john"},
		{name: "add paths", tmpl: "{{add p1.age p2.age}}", vars: `{"p1": {"age": 10}, "p2": {"age": 20}}`, want: "30"},
		{name: "or", tmpl: "{{or p1 p2}}", vars: `{"p1": true, "p2": false}`, want: "true"},
		{name: "nested logic true", tmpl: "{{#if (and (or a b) c)}}hallo{{/if}}", vars: `{"a": true, "b": false, "c": true}`, want: "hallo"},
		{name: "nested logic all false", tmpl: "{{#if (and (or a b) c)}}hallo{{/if}}", vars: `{"a": false, "b": false, "c": false}`, want: ""},
		{name: "nested logic c false", tmpl: "{{#if (and (or a b) c)}}hallo{{/if}}", vars: `{"a": true, "b": true, "c": false}`, want: ""},
		{name: "isdef absent", tmpl: "{{isdef nope}}", vars: `{}`, want: "false"},
		{name: "isundef absent", tmpl: "{{isundef nope}}", vars: `{}`, want: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustRender(t, tt.tmpl, tt.vars))
		})
	}
}

func TestRender_NullIsDefined(t *testing.T) {
	assert.Equal(t, "true false", mustRender(t, "{{isdef x}} {{isundef x}}", `{"x": null}`))
	assert.Equal(t, "true", mustRender(t, "{{isdef x}}", `{"x": false}`))
	assert.Equal(t, "false", mustRender(t, "{{isdef_pass x}}", `{"x": 0}`))
	assert.Equal(t, "true", mustRender(t, "{{isdef_pass x includeZero=true}}", `{"x": 0}`))
}

func TestRender_Strict(t *testing.T) {
	_, err := render(t, "Hello {{name}}", `{}`, WithStrict(true))
	herr := requireKind(t, err, helper.KindRender)
	assert.Contains(t, herr.Error(), `"name"`)
	assert.Equal(t, 1, herr.Line)

	assert.Equal(t, "Hello ", mustRender(t, "Hello {{name}}", `{}`))

	// Helpers receive absence instead of a render error
	assert.Equal(t, "false", mustRender(t, "{{isdef name}}", `{}`, WithStrict(true)))
	assert.Equal(t, "anonymous", mustRender(t,
		"{{#if (isdef_pass user.nick)}}{{user.nick}}{{else}}anonymous{{/if}}", `{"user": {}}`, WithStrict(true)))

	_, err = render(t, "{{#if missing}}x{{/if}}", `{}`, WithStrict(true))
	requireKind(t, err, helper.KindRender)

	_, err = render(t, "{{upper s locale=loc}}", `{"s": "a"}`, WithStrict(true))
	requireKind(t, err, helper.KindRender)
	assert.Equal(t, "A", mustRender(t, "{{upper s locale=loc}}", `{"s": "a"}`))
}

func TestRender_StrictOverride(t *testing.T) {
	engine := NewEngine(funcs.NewRegistry())
	assert.False(t, engine.Strict())

	_, err := engine.Exec("{{x}}", value.Map(nil), true)
	requireKind(t, err, helper.KindRender)

	out, err := engine.Exec("{{x}}", value.Map(nil), false)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestRender_HelperErrors(t *testing.T) {
	_, err := render(t, "{{add a}}", `{"a": 1}`)
	herr := requireKind(t, err, helper.KindArity)
	assert.Equal(t, "add", herr.Helper)

	_, err = render(t, "line one\n{{add a b}}", `{"a": 1}`)
	herr = requireKind(t, err, helper.KindMissingParameter)
	assert.Equal(t, "b", herr.Param)
	assert.Equal(t, 2, herr.Line)

	_, err = render(t, "{{div 1 0}}", `{}`)
	requireKind(t, err, helper.KindRuntime)
	assert.True(t, errors.Is(err, helper.ErrRuntime))

	_, err = render(t, "{{frobnicate 1}}", `{}`)
	herr = requireKind(t, err, helper.KindUnknownHelper)
	assert.Equal(t, "frobnicate", herr.Helper)
}

func TestRender_SyntaxError(t *testing.T) {
	_, err := render(t, "{{#if x}}unclosed", `{}`)
	requireKind(t, err, helper.KindTemplateSyntax)

	engine := NewEngine(funcs.NewRegistry())
	assert.Error(t, engine.ValidateTemplate("{{"))
	assert.NoError(t, engine.ValidateTemplate("{{name}}"))
}

func TestRender_HelperWithoutArguments(t *testing.T) {
	out := mustRender(t, "{{rand_int max=1}}", `{}`)
	assert.Equal(t, "0", out)
}

func TestRender_Escaping(t *testing.T) {
	vars := `{"html": "<b>&</b>"}`
	assert.Equal(t, "&lt;b&gt;&amp;&lt;/b&gt;", mustRender(t, "{{html}}", vars))
	assert.Equal(t, "<b>&</b>", mustRender(t, "{{{html}}}", vars))
	assert.Equal(t, "<B>", mustRender(t, "{{{upper s}}}", `{"s": "<b>"}`))
}

func TestRender_Literals(t *testing.T) {
	assert.Equal(t, "5", mustRender(t, "{{add 2 3}}", `{}`))
	assert.Equal(t, "2", mustRender(t, "{{floor 2.5}}", `{}`))
	assert.Equal(t, "HI", mustRender(t, `{{upper "hi"}}`, `{}`))
	assert.Equal(t, "false", mustRender(t, "{{not true}}", `{}`))
	assert.Equal(t, "-4", mustRender(t, "{{add -7 3}}", `{}`))

	// integer literals keep full int64 precision
	assert.Equal(t, "9007199254740993", mustRender(t, "{{add 9007199254740993 0}}", `{}`))
	assert.Equal(t, "9223372036854775807", mustRender(t, "{{add 9223372036854775807 0}}", `{}`))

	_, err := render(t, "{{add 9223372036854775808 0}}", `{}`)
	herr := requireKind(t, err, helper.KindRender)
	assert.Contains(t, herr.Error(), "out of range")
}

func TestRender_IfUnless(t *testing.T) {
	tmpl := "{{#if n}}yes{{else}}no{{/if}}"
	assert.Equal(t, "no", mustRender(t, tmpl, `{"n": 0}`))
	assert.Equal(t, "yes", mustRender(t, tmpl, `{"n": 2}`))
	assert.Equal(t, "yes", mustRender(t, "{{#if n includeZero=true}}yes{{else}}no{{/if}}", `{"n": 0}`))
	assert.Equal(t, "empty", mustRender(t, "{{#unless items}}empty{{/unless}}", `{"items": []}`))
	assert.Equal(t, "b", mustRender(t, "{{#if a}}a{{else if b}}b{{else}}c{{/if}}", `{"a": false, "b": true}`))

	_, err := render(t, "{{#if a b}}x{{/if}}", `{"a": 1, "b": 2}`)
	requireKind(t, err, helper.KindRender)

	_, err = render(t, "{{#if a bogus=1}}x{{/if}}", `{"a": 1}`)
	herr := requireKind(t, err, helper.KindArity)
	assert.Equal(t, "bogus", herr.Param)
}

func TestRender_Each(t *testing.T) {
	assert.Equal(t, "0:a,1:b,", mustRender(t, "{{#each items}}{{@index}}:{{this}},{{/each}}", `{"items": ["a", "b"]}`))
	assert.Equal(t, "[a|b]", mustRender(t, "[{{#each items}}{{this}}{{#unless @last}}|{{/unless}}{{/each}}]", `{"items": ["a", "b"]}`))
	assert.Equal(t, "x=1;y=2;", mustRender(t, "{{#each m}}{{@key}}={{this}};{{/each}}", `{"m": {"y": 2, "x": 1}}`))
	assert.Equal(t, "none", mustRender(t, "{{#each items}}x{{else}}none{{/each}}", `{"items": []}`))
	assert.Equal(t, "1-a 2-b ", mustRender(t, "{{#each items as |item i|}}{{add i 1}}-{{item}} {{/each}}", `{"items": ["a", "b"]}`))
}

func TestRender_ScopeChain(t *testing.T) {
	vars := `{"greeting": "hi", "people": [{"name": "ann"}, {"name": "bob", "greeting": "yo"}]}`

	assert.Equal(t, "hi ann;yo bob;", mustRender(t, "{{#each people}}{{greeting}} {{name}};{{/each}}", vars))
	assert.Equal(t, "hi ann;hi bob;", mustRender(t, "{{#each people}}{{../greeting}} {{name}};{{/each}}", vars))
	assert.Equal(t, "hi,hi,", mustRender(t, "{{#each people}}{{@root.greeting}},{{/each}}", vars))
	assert.Equal(t, ";yo;", mustRender(t, "{{#each people}}{{this.greeting}};{{/each}}", vars))
	assert.Equal(t, "2", mustRender(t, "{{people.length}}", vars))
}

func TestRender_With(t *testing.T) {
	vars := `{"user": {"name": "ann", "tags": ["a"]}, "site": "x"}`
	assert.Equal(t, "ann@x", mustRender(t, "{{#with user}}{{name}}@{{site}}{{/with}}", vars))
	assert.Equal(t, "nobody", mustRender(t, "{{#with nobody}}x{{else}}nobody{{/with}}", vars))
}

func TestRender_ValueSections(t *testing.T) {
	assert.Equal(t, "ab", mustRender(t, "{{#items}}{{this}}{{/items}}", `{"items": ["a", "b"]}`))
	assert.Equal(t, "ann", mustRender(t, "{{#user}}{{name}}{{/user}}", `{"user": {"name": "ann"}}`))
	assert.Equal(t, "off", mustRender(t, "{{#flag}}on{{else}}off{{/flag}}", `{"flag": false}`))
	assert.Equal(t, "seen", mustRender(t, "{{#isdef x}}seen{{/isdef}}", `{"x": 1}`))
}

func TestRender_ValueFormatting(t *testing.T) {
	assert.Equal(t, "[1, two]", mustRender(t, "{{list}}", `{"list": [1, "two"]}`))
	assert.Equal(t, "[object]", mustRender(t, "{{obj}}", `{"obj": {"a": 1}}`))
	assert.Equal(t, "2.5", mustRender(t, "{{n}}", `{"n": 2.5}`))
	assert.Equal(t, "", mustRender(t, "{{n}}", `{"n": null}`))
}

func TestRender_PartialsRejected(t *testing.T) {
	_, err := render(t, "{{> header}}", `{}`)
	requireKind(t, err, helper.KindRender)
}

func TestRender_CommentsAndContent(t *testing.T) {
	assert.Equal(t, "a  b", mustRender(t, "a {{! note }} b", `{}`))
}

func TestEngine_Cache(t *testing.T) {
	engine := NewEngine(funcs.NewRegistry())

	for i := 0; i < 3; i++ {
		_, err := engine.Render("{{name}}", value.Map(nil))
		require.NoError(t, err)
	}
	assert.Len(t, engine.cache, 1)

	engine.ClearCache()
	assert.Empty(t, engine.cache)

	dev := NewEngine(funcs.NewRegistry(), WithDevMode(true))
	_, err := dev.Render("{{name}}", value.Map(nil))
	require.NoError(t, err)
	assert.Empty(t, dev.cache)
}

func TestEngine_ConcurrentRender(t *testing.T) {
	engine := NewEngine(funcs.NewRegistry())
	vars := data(t, `{"a": 2, "b": 3}`)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := engine.Render("{{mul a b}}", vars)
			assert.NoError(t, err)
			assert.Equal(t, "6", out)
		}()
	}
	wg.Wait()
}
