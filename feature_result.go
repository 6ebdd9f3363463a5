package growthbook

// FeatureResult is the result of evaluating a feature.
type FeatureResult struct {
	// The evaluated value of the feature
	Value FeatureValue `json:"value"`
	// True when the value is truthy
	On bool `json:"on"`
	// True when the value is falsy
	Off bool `json:"off"`
	// Which stage of evaluation produced the value
	Source FeatureResultSource `json:"source"`
	// The id of the rule that produced the value, if any
	RuleId string `json:"ruleId,omitempty"`
	// The experiment the value came from, for experiment sources
	Experiment *Experiment `json:"experiment,omitempty"`
	// The result of that experiment
	ExperimentResult *ExperimentResult `json:"experimentResult,omitempty"`
}

// InExperiment reports whether the feature value was assigned by a
// running experiment.
func (res *FeatureResult) InExperiment() bool {
	return res.ExperimentResult != nil && res.ExperimentResult.InExperiment
}

func getFeatureResult(
	value FeatureValue,
	source FeatureResultSource,
	ruleId string,
	experiment *Experiment,
	experimentResult *ExperimentResult,
) *FeatureResult {
	on := truthy(value)
	return &FeatureResult{
		Value:            value,
		On:               on,
		Off:              !on,
		Source:           source,
		RuleId:           ruleId,
		Experiment:       experiment,
		ExperimentResult: experimentResult,
	}
}
