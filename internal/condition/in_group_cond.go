package condition

import "github.com/growthbook/growthbook-go/internal/value"

// InGroupCond checks if a value is a member of a saved group.
type InGroupCond struct {
	group string
}

func NewInGroupCond(group string) InGroupCond {
	return InGroupCond{group}
}

func NewNotInGroupCond(group string) Condition {
	return NotCond{NewInGroupCond(group)}
}

func (c InGroupCond) Eval(actual value.Value, groups SavedGroups) bool {
	if arr, ok := groups[c.group]; ok {
		return isIn(actual, arr)
	}
	return false
}
