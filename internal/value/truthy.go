package value

// Truthy maps a value to its boolean interpretation.
//
// Null is false, booleans are themselves, strings, lists and maps are true
// when non-empty. Numbers are true when non-zero; with includeZero set, zero
// is also true, so every number is. includeZero never makes anything false.
func Truthy(v Value, includeZero bool) bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.b
	case KindNumber:
		if includeZero {
			return true
		}
		if v.isInt {
			return v.i != 0
		}
		return v.f != 0
	case KindString:
		return v.s != ""
	case KindList:
		return len(v.list) > 0
	case KindMap:
		return len(v.m) > 0
	default:
		return false
	}
}
