package growthbook

import (
	"encoding/json"
	"errors"
)

// Namespace specifies which part of a namespace an experiment
// occupies. If two experiments are in the same namespace and their
// ranges don't overlap, they will be mutually exclusive.
type Namespace struct {
	ID    string
	Start float64
	End   float64
}

func (ns *Namespace) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{ns.ID, ns.Start, ns.End})
}

func (ns *Namespace) UnmarshalJSON(b []byte) error {
	tmp := []any{&ns.ID, &ns.Start, &ns.End}
	okLen := len(tmp)
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	if len(tmp) != okLen {
		return errors.New("wrong number of JSON fields for namespace")
	}
	return nil
}

// inNamespace determines whether a user's hash value lies within the
// namespace range. A nil namespace includes everyone.
func (ns *Namespace) inNamespace(userID string) bool {
	if ns == nil {
		return true
	}
	n := hash("__"+ns.ID, userID, 1)
	return *n >= ns.Start && *n < ns.End
}
