package condition

import "github.com/growthbook/growthbook-go/internal/value"

// TypeCond checks a value's type tag. "null" and "undefined" are
// distinct tags.
type TypeCond struct {
	t value.ValueType
}

func NewTypeCond(arg string) Condition {
	t, ok := typeFromName(arg)
	if !ok {
		// Unknown type names never match.
		return False{}
	}
	return TypeCond{t}
}

func typeFromName(arg string) (value.ValueType, bool) {
	switch arg {
	case "string":
		return value.StrType, true
	case "number":
		return value.NumType, true
	case "boolean":
		return value.BoolType, true
	case "object":
		return value.ObjType, true
	case "array":
		return value.ArrType, true
	case "null":
		return value.NullType, true
	case "undefined":
		return value.UndefType, true
	default:
		return value.NullType, false
	}
}

func (c TypeCond) Eval(actual value.Value, _ SavedGroups) bool {
	return actual.Type() == c.t
}
