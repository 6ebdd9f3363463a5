package growthbook

// FeatureValue is a wrapper around an arbitrary type representing the
// value of a feature. Features can return any kind of JSON value.
type FeatureValue any

// FeatureMap is a map of feature definitions keyed by feature id.
// Once published by a repository or set on a client it is treated as
// immutable; updates swap the whole map.
type FeatureMap map[string]*Feature

// Feature has a default value plus rules that can override the
// default.
type Feature struct {
	DefaultValue FeatureValue  `json:"defaultValue"`
	Rules        []FeatureRule `json:"rules"`
}
