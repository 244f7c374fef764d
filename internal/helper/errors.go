package helper

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies core and host errors
type ErrorKind int

const (
	// KindArity means the call site passed the wrong number of arguments
	KindArity ErrorKind = iota + 1
	// KindMissingParameter means a required argument resolved to nothing
	KindMissingParameter
	// KindTypeMismatch means an argument does not coerce to the declared type
	KindTypeMismatch
	// KindUnknownHelper means no helper is registered under the name
	KindUnknownHelper
	// KindRuntime means the helper itself failed while computing its result
	KindRuntime
	// KindTemplateSyntax means the template could not be parsed
	KindTemplateSyntax
	// KindRender means the host engine could not render the template
	KindRender
)

// Sentinel errors matched by errors.Is against any *Error of the same kind
var (
	ErrArity            = errors.New("wrong number of arguments")
	ErrMissingParameter = errors.New("missing parameter")
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrUnknownHelper    = errors.New("unknown helper")
	ErrRuntime          = errors.New("helper failed")
	ErrTemplateSyntax   = errors.New("template syntax error")
	ErrRender           = errors.New("render error")
)

// String returns the kind name
func (k ErrorKind) String() string {
	switch k {
	case KindArity:
		return "arity"
	case KindMissingParameter:
		return "missing_parameter"
	case KindTypeMismatch:
		return "type_mismatch"
	case KindUnknownHelper:
		return "unknown_helper"
	case KindRuntime:
		return "runtime"
	case KindTemplateSyntax:
		return "template_syntax"
	case KindRender:
		return "render"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindArity:
		return ErrArity
	case KindMissingParameter:
		return ErrMissingParameter
	case KindTypeMismatch:
		return ErrTypeMismatch
	case KindUnknownHelper:
		return ErrUnknownHelper
	case KindRuntime:
		return ErrRuntime
	case KindTemplateSyntax:
		return ErrTemplateSyntax
	case KindRender:
		return ErrRender
	default:
		return nil
	}
}

// Error is a structured helper, binding or render failure
type Error struct {
	Kind ErrorKind

	// Helper is the helper name, empty for pure render errors
	Helper string

	// Param is the parameter or keyword name; Index is its zero-based
	// positional index, or -1 for keywords and non-parameter errors
	Param string
	Index int

	Expected string
	Actual   string

	// Line is the template line the error occurred on, 0 when unknown
	Line int

	Msg string
	Err error
}

// Error implements error
func (e *Error) Error() string {
	var sb strings.Builder

	if e.Helper != "" {
		fmt.Fprintf(&sb, "helper %q: ", e.Helper)
	}

	switch {
	case e.Err != nil:
		if e.Msg != "" {
			fmt.Fprintf(&sb, "%s: %v", e.Msg, e.Err)
		} else {
			sb.WriteString(e.Err.Error())
		}
	case e.Kind == KindArity:
		if e.Param != "" {
			fmt.Fprintf(&sb, "unexpected keyword %q", e.Param)
		} else {
			fmt.Fprintf(&sb, "expected %s arguments, got %s", e.Expected, e.Actual)
		}
	case e.Kind == KindMissingParameter:
		fmt.Fprintf(&sb, "missing parameter %s", e.param())
	case e.Kind == KindTypeMismatch:
		fmt.Fprintf(&sb, "parameter %s expects %s, got %s", e.param(), e.Expected, e.Actual)
	case e.Kind == KindUnknownHelper:
		sb.WriteString("unknown helper")
	case e.Msg != "":
		sb.WriteString(e.Msg)
	default:
		sb.WriteString(e.Kind.sentinel().Error())
	}

	if e.Line > 0 {
		fmt.Fprintf(&sb, " (line %d)", e.Line)
	}

	return sb.String()
}

// param describes the offending parameter for messages
func (e *Error) param() string {
	switch {
	case e.Index >= 0 && e.Param != "":
		return fmt.Sprintf("%q (argument %d)", e.Param, e.Index+1)
	case e.Index >= 0:
		return fmt.Sprintf("argument %d", e.Index+1)
	default:
		return fmt.Sprintf("%q", e.Param)
	}
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the same kind
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// KindOf returns the kind of the first *Error in err's chain, or 0
func KindOf(err error) ErrorKind {
	var herr *Error
	if errors.As(err, &herr) {
		return herr.Kind
	}
	return 0
}

// Failf reports a helper computation failure such as division by zero
func Failf(format string, args ...interface{}) error {
	return &Error{Kind: KindRuntime, Index: -1, Msg: fmt.Sprintf(format, args...)}
}

// SyntaxError wraps a template parse failure
func SyntaxError(err error) *Error {
	return &Error{Kind: KindTemplateSyntax, Index: -1, Msg: "template syntax error", Err: err}
}

// RenderErrorf reports a host rendering failure at the given line
func RenderErrorf(line int, format string, args ...interface{}) *Error {
	return &Error{Kind: KindRender, Index: -1, Line: line, Msg: fmt.Sprintf(format, args...)}
}

func arityError(helper string, expected string, got int) *Error {
	return &Error{
		Kind:     KindArity,
		Helper:   helper,
		Index:    -1,
		Expected: expected,
		Actual:   fmt.Sprint(got),
	}
}

func unexpectedKeyword(helper, name string) *Error {
	return &Error{Kind: KindArity, Helper: helper, Param: name, Index: -1}
}

func missingParameter(helper, param string, index int) *Error {
	return &Error{Kind: KindMissingParameter, Helper: helper, Param: param, Index: index}
}

func typeMismatch(helper, param string, index int, expected ParamType, actual string) *Error {
	return &Error{
		Kind:     KindTypeMismatch,
		Helper:   helper,
		Param:    param,
		Index:    index,
		Expected: expected.String(),
		Actual:   actual,
	}
}

func unknownHelper(name string) *Error {
	return &Error{Kind: KindUnknownHelper, Helper: name, Index: -1}
}
