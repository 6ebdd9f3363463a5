package growthbook

// VariationMeta is meta-information about an experiment variation
// that is passed through to results and tracking callbacks.
type VariationMeta struct {
	Passthrough bool   `json:"passthrough,omitempty"`
	Key         string `json:"key,omitempty"`
	Name        string `json:"name,omitempty"`
}
