package value

// Lookup is the result of resolving an identifier against the active scope
// chain: either a present Value or the absence of any binding.
type Lookup struct {
	v       Value
	present bool
}

// Present wraps a resolved value
func Present(v Value) Lookup {
	return Lookup{v: v, present: true}
}

// Absent is the lookup result for an identifier with no binding
func Absent() Lookup {
	return Lookup{}
}

// Value returns the resolved value and whether one was found
func (l Lookup) Value() (Value, bool) {
	return l.v, l.present
}

// IsPresent reports whether a binding was found
func (l Lookup) IsPresent() bool {
	return l.present
}

// OrNull returns the resolved value, or null when absent
func (l Lookup) OrNull() Value {
	if !l.present {
		return Null()
	}
	return l.v
}

// IsMissing reports whether the identifier had no binding anywhere in the
// scope chain. A binding to null or false is not missing.
func IsMissing(l Lookup) bool {
	return !l.present
}
