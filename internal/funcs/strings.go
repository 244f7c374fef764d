package funcs

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/aescanero/dago-hbs-render/internal/helper"
	"github.com/aescanero/dago-hbs-render/internal/value"
)

const ellipsis = "..."

func registerStrings(r *helper.Registry) {
	str := []helper.Param{helper.Pos("s", helper.String)}
	locale := []helper.Keyword{helper.Kw("locale", helper.String, value.String(""))}

	r.Register("upper", helper.Spec{Params: str, Keywords: locale}, caseFold(cases.Upper))
	r.Register("lower", helper.Spec{Params: str, Keywords: locale}, caseFold(cases.Lower))
	r.Register("uppercase", helper.Spec{Params: str, Keywords: locale}, caseFold(cases.Upper))
	r.Register("lowercase", helper.Spec{Params: str, Keywords: locale}, caseFold(cases.Lower))

	r.Register("trim", helper.Spec{
		Params:      str,
		Description: "strips leading and trailing whitespace",
	}, func(args *helper.Bound) (value.Value, error) {
		return value.String(strings.TrimSpace(args.String(0))), nil
	})

	r.Register("trunc", helper.Spec{
		Params:      []helper.Param{helper.Pos("length", helper.Count), helper.Pos("s", helper.String)},
		Description: "cuts s to at most length characters",
	}, func(args *helper.Bound) (value.Value, error) {
		return value.String(truncate(args.String(1), args.Int(0))), nil
	})

	r.Register("abbrev", helper.Spec{
		Params:      []helper.Param{helper.Pos("length", helper.Count), helper.Pos("s", helper.String)},
		Description: "cuts s to length characters, the last three being an ellipsis",
	}, func(args *helper.Bound) (value.Value, error) {
		return value.String(abbreviate(args.String(1), args.Int(0))), nil
	})

	r.Register("plural", helper.Spec{
		Params: []helper.Param{
			helper.Pos("count", helper.Count),
			helper.Pos("singular", helper.String),
			helper.Pos("plural", helper.String),
		},
		Description: "singular when count is 1, plural otherwise",
	}, func(args *helper.Bound) (value.Value, error) {
		if args.Int(0) == 1 {
			return value.String(args.String(1)), nil
		}
		return value.String(args.String(2)), nil
	})

	r.Register("join", helper.Spec{
		Params:      []helper.Param{helper.Pos("delimiter", helper.String), helper.Pos("elements", helper.List)},
		Description: "joins list elements with delimiter",
	}, func(args *helper.Bound) (value.Value, error) {
		elems := args.List(1)
		strs := make([]string, len(elems))
		for i, e := range elems {
			strs[i] = e.String()
		}
		return value.String(strings.Join(strs, args.String(0))), nil
	})

	r.Register("split", helper.Spec{
		Params:      []helper.Param{helper.Pos("delimiter", helper.String), helper.Pos("s", helper.String)},
		Description: "splits s around every delimiter",
	}, func(args *helper.Bound) (value.Value, error) {
		return value.Strings(strings.Split(args.String(1), args.String(0))), nil
	})

	r.Register("splitn", helper.Spec{
		Params: []helper.Param{
			helper.Pos("delimiter", helper.String),
			helper.Pos("count", helper.Count),
			helper.Pos("s", helper.String),
		},
		Description: "splits s into at most count pieces",
	}, func(args *helper.Bound) (value.Value, error) {
		parts := strings.SplitN(args.String(2), args.String(0), int(args.Int(1)))
		return value.Strings(parts), nil
	})

	r.Register("sort_alpha", helper.Spec{
		Params:      []helper.Param{helper.Pos("list", helper.StringList)},
		Description: "sorts a list of strings lexically",
	}, func(args *helper.Bound) (value.Value, error) {
		sorted := args.Strings(0)
		sort.Strings(sorted)
		return value.Strings(sorted), nil
	})

	r.Register("trim_prefix", helper.Spec{
		Params:      []helper.Param{helper.Pos("prefix", helper.String), helper.Pos("s", helper.String)},
		Description: "removes prefix from s once, when present",
	}, func(args *helper.Bound) (value.Value, error) {
		return value.String(strings.TrimPrefix(args.String(1), args.String(0))), nil
	})

	r.Register("trim_suffix", helper.Spec{
		Params:      []helper.Param{helper.Pos("suffix", helper.String), helper.Pos("s", helper.String)},
		Description: "removes suffix from s once, when present",
	}, func(args *helper.Bound) (value.Value, error) {
		return value.String(strings.TrimSuffix(args.String(1), args.String(0))), nil
	})

	r.Register("trim_all", helper.Spec{
		Params:      []helper.Param{helper.Pos("substr", helper.String), helper.Pos("s", helper.String)},
		Description: "removes substr from both ends of s, once each",
	}, func(args *helper.Bound) (value.Value, error) {
		sub := args.String(0)
		return value.String(strings.TrimPrefix(strings.TrimSuffix(args.String(1), sub), sub)), nil
	})
}

// caseFold builds a locale-aware upper or lower helper. A Caser is not safe
// for concurrent use, so one is built per call.
func caseFold(newCaser func(language.Tag, ...cases.Option) cases.Caser) helper.Func {
	return func(args *helper.Bound) (value.Value, error) {
		tag := language.Und
		if loc := args.KeywordString("locale"); loc != "" {
			parsed, err := language.Parse(loc)
			if err != nil {
				return value.Value{}, helper.Failf("unknown locale %q", loc)
			}
			tag = parsed
		}
		return value.String(newCaser(tag).String(args.String(0))), nil
	}
}

// truncate cuts s to at most n runes
func truncate(s string, n int64) string {
	runes := []rune(s)
	if int64(len(runes)) <= n {
		return s
	}
	return string(runes[:n])
}

// abbreviate cuts s to n runes, ending in an ellipsis when something was cut.
// For n <= 3 there is no room for an ellipsis and s is simply cut.
func abbreviate(s string, n int64) string {
	if n <= int64(len(ellipsis)) {
		return truncate(s, n)
	}
	runes := []rune(s)
	if int64(len(runes)) <= n {
		return s
	}
	return string(runes[:n-int64(len(ellipsis))]) + ellipsis
}
