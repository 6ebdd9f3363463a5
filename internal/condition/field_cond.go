package condition

import (
	"strings"

	"github.com/growthbook/growthbook-go/internal/value"
)

// FieldCond applies a condition to the value at a dot-separated path.
// Missing paths resolve to the undefined sentinel, so `$exists` and
// `$type` can distinguish absent attributes from null ones.
type FieldCond struct {
	path []string
	cond Condition
}

func NewFieldCond(pathStr string, cond Condition) FieldCond {
	return FieldCond{strings.Split(pathStr, "."), cond}
}

func (c FieldCond) Eval(actual value.Value, groups SavedGroups) bool {
	return c.cond.Eval(value.Path(actual, c.path...), groups)
}
