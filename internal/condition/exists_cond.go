package condition

import (
	"github.com/growthbook/growthbook-go/internal/value"
)

// ExistsCond checks field presence. A field is present when path
// resolution did not yield the undefined sentinel; an explicit null
// still counts as present.
type ExistsCond struct {
	expected bool
}

func NewExistsCond(arg any) ExistsCond {
	v := value.New(arg).Cast(value.BoolType)
	return ExistsCond{value.Equal(v, value.True())}
}

func (c ExistsCond) Eval(actual value.Value, _ SavedGroups) bool {
	if c.expected {
		return !value.IsUndef(actual)
	}
	return value.IsUndef(actual)
}
