// Package value provides the dynamically-typed data model templates operate on.
//
// A Value is a tagged variant: null, boolean, number, string, ordered list or
// string-keyed map. Numbers remember whether they are integral so integer
// helpers and real-number helpers can each work in their own domain.
//
// Absence is not a Value. Resolving an identifier yields a Lookup, which is
// either Present(v) or Absent(). A binding to null is present:
//
//	doc, _ := value.ParseJSON([]byte(`{"name": null}`))
//
//	name, _ := doc.Field("name")
//	value.IsMissing(value.Present(name)) // false: bound to null
//	value.IsMissing(value.Absent())      // true: no binding at all
//
// Truthiness is defined once, here, and shared by every logic helper and by
// the host engine's conditionals:
//
//	value.Truthy(value.Int(0), false) // false
//	value.Truthy(value.Int(0), true)  // true: includeZero puts zero in the truthy set
//	value.Truthy(value.String(""), false) // false
//
// Values are immutable. Accessors that expose lists or maps return copies.
package value
