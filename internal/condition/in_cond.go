package condition

import "github.com/growthbook/growthbook-go/internal/value"

// InCond checks if a value is in an array. Array field values match
// when any of their elements is in the expected list.
type InCond struct {
	expected value.ArrValue
}

func NewInCond(arg value.ArrValue) InCond {
	return InCond{arg}
}

func NewNotInCond(arg value.ArrValue) Condition {
	return NotCond{NewInCond(arg)}
}

func (c InCond) Eval(actual value.Value, _ SavedGroups) bool {
	if arr, ok := actual.(value.ArrValue); ok {
		for _, v := range arr {
			if isIn(v, c.expected) {
				return true
			}
		}
		return false
	}
	return isIn(actual, c.expected)
}
