package growthbook

// FeatureResultSource tells which stage of evaluation produced a
// feature result.
type FeatureResultSource string

const (
	UnknownFeatureResultSource     FeatureResultSource = "unknownFeature"
	DefaultValueResultSource       FeatureResultSource = "defaultValue"
	ForceResultSource              FeatureResultSource = "force"
	ExperimentResultSource         FeatureResultSource = "experiment"
	CyclicPrerequisiteResultSource FeatureResultSource = "cyclicPrerequisite"
	PrerequisiteResultSource       FeatureResultSource = "prerequisite"
)
