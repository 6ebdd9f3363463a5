package condition

import "github.com/growthbook/growthbook-go/internal/value"

// SizeCond checks the length of an array field. The argument is
// either a plain number or a nested matcher applied to the length.
type SizeCond struct {
	cond Condition
}

func NewSizeCond(cond Condition) SizeCond {
	return SizeCond{cond}
}

func (c SizeCond) Eval(actual value.Value, groups SavedGroups) bool {
	arr, ok := actual.(value.ArrValue)
	if !ok {
		return false
	}
	return c.cond.Eval(value.Num(len(arr)), groups)
}
