package condition

import (
	"encoding/json"

	"github.com/growthbook/growthbook-go/internal/value"
)

// SavedGroups holds named lists of attribute values referenced by the
// $inGroup and $notInGroup operators.
type SavedGroups map[string]value.ArrValue

func (sg *SavedGroups) UnmarshalJSON(data []byte) error {
	var groups map[string][]any
	if err := json.Unmarshal(data, &groups); err != nil {
		return err
	}
	*sg = SavedGroups{}
	for k, v := range groups {
		if arr, ok := value.New(v).(value.ArrValue); ok {
			(*sg)[k] = arr
		}
	}
	return nil
}
