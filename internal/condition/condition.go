// Package condition implements the MongoDB-style targeting condition
// DSL. A condition is unmarshalled from JSON into a tree of Condition
// nodes that evaluate against a tagged JSON value, usually the user
// attributes object.
package condition

import (
	"github.com/growthbook/growthbook-go/internal/value"
)

// Condition evaluates a conditional expression against a value.
type Condition interface {
	Eval(value.Value, SavedGroups) bool
}

func evalAny(cs []Condition, actual value.Value, groups SavedGroups) bool {
	if len(cs) == 0 {
		return true
	}
	for _, c := range cs {
		if c.Eval(actual, groups) {
			return true
		}
	}
	return false
}

func evalAll(cs []Condition, actual value.Value, groups SavedGroups) bool {
	for _, c := range cs {
		if !c.Eval(actual, groups) {
			return false
		}
	}
	return true
}
