package growthbook

import (
	"github.com/barkimedes/go-deepcopy"

	"github.com/growthbook/growthbook-go/internal/value"
)

// Attributes is an arbitrarily nested JSON object of user attributes
// used for experiment bucketing and condition targeting.
type Attributes map[string]any

// Copy returns a deep copy, so that child clients never share mutable
// attribute state with their parent or the caller.
func (a Attributes) Copy() Attributes {
	if a == nil {
		return nil
	}
	return deepcopy.MustAnything(map[string]any(a)).(map[string]any)
}

func (a Attributes) toValue() value.ObjValue {
	return value.Obj(a)
}
