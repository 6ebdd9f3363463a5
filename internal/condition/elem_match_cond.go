package condition

import "github.com/growthbook/growthbook-go/internal/value"

// ElemMatchCond checks that at least one element of an array field
// matches the expected condition.
type ElemMatchCond struct {
	cond Condition
}

func NewElemMatchCond(cond Condition) ElemMatchCond {
	return ElemMatchCond{cond}
}

func (c ElemMatchCond) Eval(actual value.Value, groups SavedGroups) bool {
	arr, ok := actual.(value.ArrValue)
	if !ok {
		return false
	}
	for _, v := range arr {
		if c.cond.Eval(v, groups) {
			return true
		}
	}
	return false
}
