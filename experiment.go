package growthbook

import (
	"encoding/json"

	"github.com/growthbook/growthbook-go/internal/condition"
)

// Experiment defines a single experiment: an ordered list of
// variation values with weighted, hash-based bucketing.
type Experiment struct {
	Key                    string            `json:"key"`
	Variations             []FeatureValue    `json:"variations,omitempty"`
	Ranges                 []BucketRange     `json:"ranges,omitempty"`
	Meta                   []VariationMeta   `json:"meta,omitempty"`
	Filters                []Filter          `json:"filters,omitempty"`
	Seed                   string            `json:"seed,omitempty"`
	Name                   string            `json:"name,omitempty"`
	Phase                  string            `json:"phase,omitempty"`
	Weights                []float64         `json:"weights,omitempty"`
	Condition              condition.Base    `json:"condition,omitempty"`
	ParentConditions       []ParentCondition `json:"parentConditions,omitempty"`
	Coverage               *float64          `json:"coverage,omitempty"`
	Namespace              *Namespace        `json:"namespace,omitempty"`
	Force                  *int              `json:"force,omitempty"`
	HashAttribute          string            `json:"hashAttribute,omitempty"`
	FallbackAttribute      string            `json:"fallbackAttribute,omitempty"`
	HashVersion            int               `json:"hashVersion,omitempty"`
	Active                 bool              `json:"active"`
	DisableStickyBucketing bool              `json:"disableStickyBucketing,omitempty"`
	BucketVersion          int               `json:"bucketVersion,omitempty"`
	MinBucketVersion       int               `json:"minBucketVersion,omitempty"`
}

// UnmarshalJSON deserializes experiment data, defaulting the Active
// field to true.
func (exp *Experiment) UnmarshalJSON(data []byte) error {
	type alias Experiment
	val := &alias{Active: true}

	err := json.Unmarshal(data, &val)
	if err != nil {
		return err
	}
	*exp = Experiment(*val)
	return nil
}

// NewExperiment creates an active experiment with all other fields
// empty.
func NewExperiment(key string) *Experiment {
	return &Experiment{
		Key:    key,
		Active: true,
	}
}

// WithVariations sets the variation values for an experiment.
func (exp *Experiment) WithVariations(variations ...FeatureValue) *Experiment {
	exp.Variations = variations
	return exp
}

// WithRanges sets the bucket ranges for an experiment.
func (exp *Experiment) WithRanges(ranges ...BucketRange) *Experiment {
	exp.Ranges = ranges
	return exp
}

// WithMeta sets the variation meta information for an experiment.
func (exp *Experiment) WithMeta(meta ...VariationMeta) *Experiment {
	exp.Meta = meta
	return exp
}

// WithFilters sets the filters for an experiment.
func (exp *Experiment) WithFilters(filters ...Filter) *Experiment {
	exp.Filters = filters
	return exp
}

// WithSeed sets the hash seed for an experiment.
func (exp *Experiment) WithSeed(seed string) *Experiment {
	exp.Seed = seed
	return exp
}

// WithWeights sets the variation weights for an experiment.
func (exp *Experiment) WithWeights(weights ...float64) *Experiment {
	exp.Weights = weights
	return exp
}

// WithCoverage sets the coverage for an experiment.
func (exp *Experiment) WithCoverage(coverage float64) *Experiment {
	exp.Coverage = &coverage
	return exp
}

// WithNamespace sets the namespace for an experiment.
func (exp *Experiment) WithNamespace(namespace *Namespace) *Experiment {
	exp.Namespace = namespace
	return exp
}

// WithForce sets the forced variation index for an experiment.
func (exp *Experiment) WithForce(force int) *Experiment {
	exp.Force = &force
	return exp
}

// WithHashAttribute sets the hash attribute for an experiment.
func (exp *Experiment) WithHashAttribute(hashAttribute string) *Experiment {
	exp.HashAttribute = hashAttribute
	return exp
}

// WithHashVersion sets the hash version for an experiment.
func (exp *Experiment) WithHashVersion(hashVersion int) *Experiment {
	exp.HashVersion = hashVersion
	return exp
}

// WithActive sets the active flag for an experiment.
func (exp *Experiment) WithActive(active bool) *Experiment {
	exp.Active = active
	return exp
}

func (exp *Experiment) getSeed() string {
	if exp.Seed != "" {
		return exp.Seed
	}
	return exp.Key
}

func (exp *Experiment) getCoverage() float64 {
	if exp.Coverage != nil {
		return *exp.Coverage
	}
	return 1.0
}

// experimentFromFeatureRule builds the experiment run by a feature
// rule with variations. The rule's condition and prerequisites are
// not copied: the rule walk has already checked them.
func experimentFromFeatureRule(id string, rule *FeatureRule) *Experiment {
	exp := NewExperiment(id).WithVariations(rule.Variations...)
	if rule.Key != "" {
		exp.Key = rule.Key
	}
	if rule.Coverage != nil {
		exp = exp.WithCoverage(*rule.Coverage)
	}
	if rule.Weights != nil {
		tmp := make([]float64, len(rule.Weights))
		copy(tmp, rule.Weights)
		exp = exp.WithWeights(tmp...)
	}
	if rule.HashAttribute != "" {
		exp = exp.WithHashAttribute(rule.HashAttribute)
	}
	if rule.FallbackAttribute != "" {
		exp.FallbackAttribute = rule.FallbackAttribute
	}
	if rule.Namespace != nil {
		val := Namespace{rule.Namespace.ID, rule.Namespace.Start, rule.Namespace.End}
		exp = exp.WithNamespace(&val)
	}
	if rule.Meta != nil {
		exp = exp.WithMeta(rule.Meta...)
	}
	if rule.Ranges != nil {
		exp = exp.WithRanges(rule.Ranges...)
	}
	if rule.Name != "" {
		exp.Name = rule.Name
	}
	if rule.Phase != "" {
		exp.Phase = rule.Phase
	}
	if rule.Seed != "" {
		exp = exp.WithSeed(rule.Seed)
	}
	if rule.HashVersion != 0 {
		exp = exp.WithHashVersion(rule.HashVersion)
	}
	if rule.Filters != nil {
		exp = exp.WithFilters(rule.Filters...)
	}
	exp.DisableStickyBucketing = rule.DisableStickyBucketing
	exp.BucketVersion = rule.BucketVersion
	exp.MinBucketVersion = rule.MinBucketVersion
	return exp
}
