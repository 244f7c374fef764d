package funcs

import (
	"time"

	"github.com/goodsign/monday"
	"github.com/ncruces/go-strftime"

	"github.com/aescanero/dago-hbs-render/internal/helper"
	"github.com/aescanero/dago-hbs-render/internal/value"
)

// clock is replaced in tests
var clock = time.Now

func registerDates(r *helper.Registry) {
	zone := helper.Kw("tz", helper.String, value.String("UTC"))
	locale := helper.Kw("locale", helper.String, value.String(""))

	r.Register("date_format", helper.Spec{
		Params:      []helper.Param{helper.Pos("format", helper.String), helper.Pos("date", helper.Time)},
		Keywords:    []helper.Keyword{zone, locale},
		Description: "formats date with a strftime format",
	}, func(args *helper.Bound) (value.Value, error) {
		return formatTime(args.Time(1), args.String(0), args.KeywordString("tz"), args.KeywordString("locale"))
	})

	// Time-varying: the default for at is read on every call
	r.Register("now", helper.Spec{
		Params: []helper.Param{helper.Pos("format", helper.String)},
		Keywords: []helper.Keyword{
			helper.DynamicKw("at", helper.Time, func() value.Value {
				return value.String(clock().UTC().Format(time.RFC3339Nano))
			}),
			zone,
			locale,
		},
		Description: "formats the current time with a strftime format",
	}, func(args *helper.Bound) (value.Value, error) {
		return formatTime(args.KeywordTime("at"), args.String(0), args.KeywordString("tz"), args.KeywordString("locale"))
	})
}

// formatTime renders t in the named zone. Without a locale the strftime
// format is applied directly; with one it is converted to a Go layout and
// rendered with localized month and day names.
func formatTime(t time.Time, format, tz, locale string) (value.Value, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return value.Value{}, helper.Failf("unknown time zone %q", tz)
	}
	t = t.In(loc)

	if locale == "" {
		return value.String(strftime.Format(format, t)), nil
	}

	if !knownLocale(monday.Locale(locale)) {
		return value.Value{}, helper.Failf("unsupported locale %q", locale)
	}

	layout, err := strftime.Layout(format)
	if err != nil {
		return value.Value{}, helper.Failf("format %q cannot be localized: %v", format, err)
	}

	return value.String(monday.Format(t, layout, monday.Locale(locale))), nil
}

func knownLocale(locale monday.Locale) bool {
	for _, l := range monday.ListLocales() {
		if l == locale {
			return true
		}
	}
	return false
}
