package growthbook

import "github.com/growthbook/growthbook-go/internal/condition"

// ParentCondition is a prerequisite: a condition on another feature's
// value that gates a rule or experiment. The condition is evaluated
// against the object {"value": <parent feature value>}.
type ParentCondition struct {
	Id        string         `json:"id"`
	Condition condition.Base `json:"condition"`
	Gate      bool           `json:"gate"`
}
