package condition

import "github.com/growthbook/growthbook-go/internal/value"

// ValueCond is used when a field is compared with a value directly,
// without an operator. The field value is cast to the expected type
// before comparison, as the reference JS implementation does.
type ValueCond struct {
	expected value.Value
}

func NewValueCond(arg any) ValueCond {
	return ValueCond{value.New(arg)}
}

func (c ValueCond) Eval(actual value.Value, _ SavedGroups) bool {
	return valueCompare(actual, c.expected)
}
