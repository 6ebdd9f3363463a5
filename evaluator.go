package growthbook

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/growthbook/growthbook-go/internal/condition"
	"github.com/growthbook/growthbook-go/internal/value"
)

// evaluator drives feature and experiment evaluation over an
// immutable snapshot of the feature map. It is pure: the result is a
// function of the snapshot and the evaluation settings, and it never
// blocks. A fresh evaluator is built for every evaluation, so the
// prerequisite stack is never shared.
type evaluator struct {
	features         FeatureMap
	savedGroups      condition.SavedGroups
	attributes       value.ObjValue
	enabled          bool
	url              *url.URL
	qaMode           bool
	forcedVariations ForcedVariationsMap
	logger           *slog.Logger
	evaluated        stack[string]
}

func (e *evaluator) evalFeature(key string) *FeatureResult {
	if e.evaluated.has(key) {
		return getFeatureResult(nil, CyclicPrerequisiteResultSource, "", nil, nil)
	}
	e.evaluated.push(key)
	defer e.evaluated.pop()

	feature := e.features[key]
	if feature == nil {
		return getFeatureResult(nil, UnknownFeatureResultSource, "", nil, nil)
	}

	for i := range feature.Rules {
		res := e.evalRule(key, &feature.Rules[i])
		if res != nil {
			return res
		}
	}

	return getFeatureResult(feature.DefaultValue, DefaultValueResultSource, "", nil, nil)
}

// evalRule returns nil when the rule doesn't apply and evaluation
// should continue with the next rule.
func (e *evaluator) evalRule(featureId string, rule *FeatureRule) *FeatureResult {
	for _, parent := range rule.ParentConditions {
		res := e.evalFeature(parent.Id)
		if res == nil {
			return nil
		}

		if res.Source == CyclicPrerequisiteResultSource {
			return res
		}

		evalObj := value.ObjValue{"value": value.New(res.Value)}
		if !parent.Condition.Eval(evalObj, e.savedGroups) {
			if parent.Gate {
				e.logger.Debug("Skip feature because of gating prerequisite", "id", featureId)
				return getFeatureResult(nil, PrerequisiteResultSource, "", nil, nil)
			}
			return nil
		}
	}

	if e.isFilteredOut(rule.Filters) {
		e.logger.Debug("Skip rule because of filters", "id", featureId)
		return nil
	}

	if !rule.Condition.Eval(e.attributes, e.savedGroups) {
		e.logger.Debug("Skip rule because of condition", "id", featureId)
		return nil
	}

	if rule.Force != nil {
		if !e.isIncludedInRollout(featureId, rule) {
			e.logger.Debug("Skip rule because user not included in rollout", "id", featureId)
			return nil
		}
		return getFeatureResult(rule.Force, ForceResultSource, rule.Id, nil, nil)
	}

	if len(rule.Variations) == 0 {
		return nil
	}

	exp := experimentFromFeatureRule(featureId, rule)
	res := e.runExperiment(exp, featureId)
	if !res.InExperiment || res.Passthrough {
		return nil
	}

	return getFeatureResult(res.Value, ExperimentResultSource, rule.Id, exp, res)
}

func (e *evaluator) runExperiment(exp *Experiment, featureId string) *ExperimentResult {
	// 1. Experiments with fewer than 2 variations can't assign anything.
	if len(exp.Variations) < 2 {
		e.logger.Debug("Invalid experiment", "id", exp.Key)
		return e.getExperimentResult(exp, -1, false, featureId, nil)
	}

	// 2. Globally disabled client.
	if !e.enabled {
		e.logger.Debug("Client disabled", "id", exp.Key)
		return e.getExperimentResult(exp, -1, false, featureId, nil)
	}

	// 3. Variation forced via the URL query string.
	if qsOverride, ok := getQueryStringOverride(exp.Key, e.url, len(exp.Variations)); ok {
		e.logger.Debug("Force via querystring", "id", exp.Key, "variation", qsOverride)
		return e.getExperimentResult(exp, qsOverride, false, featureId, nil)
	}

	// 4. Variation forced via the client.
	if varId, ok := e.forcedVariations[exp.Key]; ok {
		e.logger.Debug("Force via forced variations", "id", exp.Key, "variation", varId)
		return e.getExperimentResult(exp, varId, false, featureId, nil)
	}

	// 5. Stopped experiment.
	if !exp.Active {
		e.logger.Debug("Skip because inactive", "id", exp.Key)
		return e.getExperimentResult(exp, -1, false, featureId, nil)
	}

	// 6. Resolve the hash attribute, falling back if configured.
	_, hashValue := e.getHashAttribute(exp.HashAttribute, exp.FallbackAttribute)
	if hashValue == "" {
		e.logger.Debug("Skip because of missing hashAttribute", "id", exp.Key)
		return e.getExperimentResult(exp, -1, false, featureId, nil)
	}

	// 7. Filters take precedence over the namespace.
	if len(exp.Filters) > 0 {
		if e.isFilteredOut(exp.Filters) {
			e.logger.Debug("Skip because of filters", "id", exp.Key)
			return e.getExperimentResult(exp, -1, false, featureId, nil)
		}
	} else if !exp.Namespace.inNamespace(hashValue) {
		e.logger.Debug("Skip because of namespace", "id", exp.Key)
		return e.getExperimentResult(exp, -1, false, featureId, nil)
	}

	// 8. Targeting condition.
	if !exp.Condition.Eval(e.attributes, e.savedGroups) {
		e.logger.Debug("Skip because of condition", "id", exp.Key)
		return e.getExperimentResult(exp, -1, false, featureId, nil)
	}

	// 9. Prerequisites. Any failure, cyclic included, skips the
	// experiment.
	for _, parent := range exp.ParentConditions {
		res := e.evalFeature(parent.Id)
		if res == nil || res.Source == CyclicPrerequisiteResultSource {
			e.logger.Debug("Skip because of failing prerequisite", "id", exp.Key)
			return e.getExperimentResult(exp, -1, false, featureId, nil)
		}

		evalObj := value.ObjValue{"value": value.New(res.Value)}
		if !parent.Condition.Eval(evalObj, e.savedGroups) {
			e.logger.Debug("Skip because of failing prerequisite", "id", exp.Key)
			return e.getExperimentResult(exp, -1, false, featureId, nil)
		}
	}

	// 10.-11. Bucket the user.
	ranges := exp.Ranges
	if len(ranges) == 0 {
		ranges = getBucketRanges(len(exp.Variations), exp.getCoverage(), exp.Weights)
	}

	n := hash(exp.getSeed(), hashValue, if0(exp.HashVersion, 1))
	if n == nil {
		e.logger.Debug("Skip because of invalid hash version", "id", exp.Key)
		return e.getExperimentResult(exp, -1, false, featureId, nil)
	}
	assigned := chooseVariation(*n, ranges)

	// 12. Outside all ranges means not included (coverage).
	if assigned < 0 {
		e.logger.Debug("Skip because of coverage", "id", exp.Key)
		return e.getExperimentResult(exp, -1, false, featureId, nil)
	}

	// Forced variation on the experiment itself.
	if exp.Force != nil {
		e.logger.Debug("Force variation", "id", exp.Key, "variation", *exp.Force)
		return e.getExperimentResult(exp, *exp.Force, false, featureId, nil)
	}

	if e.qaMode {
		e.logger.Debug("Skip because of QA mode", "id", exp.Key)
		return e.getExperimentResult(exp, -1, false, featureId, nil)
	}

	return e.getExperimentResult(exp, assigned, true, featureId, n)
}

// getExperimentResult builds an ExperimentResult. A variation id out
// of range means the user is not in the experiment, and the first
// variation is reported as the fallback.
func (e *evaluator) getExperimentResult(
	exp *Experiment,
	variationId int,
	hashUsed bool,
	featureId string,
	bucket *float64,
) *ExperimentResult {
	inExperiment := true

	if variationId < 0 || variationId >= len(exp.Variations) {
		variationId = 0
		inExperiment = false
	}

	hashAttribute, hashValue := e.getHashAttribute(exp.HashAttribute, exp.FallbackAttribute)

	var meta *VariationMeta
	if variationId >= 0 && variationId < len(exp.Meta) {
		meta = &exp.Meta[variationId]
	}

	key := fmt.Sprint(variationId)
	if meta != nil && meta.Key != "" {
		key = meta.Key
	}

	var val FeatureValue
	if len(exp.Variations) > 0 {
		val = exp.Variations[variationId]
	}

	res := ExperimentResult{
		Key:           key,
		FeatureId:     featureId,
		InExperiment:  inExperiment,
		HashUsed:      hashUsed,
		VariationId:   variationId,
		Value:         val,
		HashAttribute: hashAttribute,
		HashValue:     hashValue,
		Bucket:        bucket,
	}

	if meta != nil {
		res.Name = meta.Name
		res.Passthrough = meta.Passthrough
	}

	return &res
}

// isIncludedInRollout gates a forced-value rule by its coverage or
// range. Neither present means everyone is included.
func (e *evaluator) isIncludedInRollout(featureId string, rule *FeatureRule) bool {
	if rule.Coverage == nil && rule.Range == nil {
		return true
	}

	if rule.Range == nil && *rule.Coverage == 0.0 {
		return false
	}

	_, hashValue := e.getHashAttribute(rule.HashAttribute, "")
	if hashValue == "" {
		return false
	}

	seed := rule.Seed
	if seed == "" {
		seed = featureId
	}
	n := hash(seed, hashValue, if0(rule.HashVersion, 1))
	if n == nil {
		return false
	}

	if rule.Range != nil {
		return rule.Range.InRange(*n)
	}

	return *n <= *rule.Coverage
}

// isFilteredOut reports whether any filter excludes the user: empty
// attribute value, or a hash outside every range of that filter.
func (e *evaluator) isFilteredOut(filters []Filter) bool {
	for _, filter := range filters {
		_, hashValue := e.getHashAttribute(filter.Attribute, "")
		if hashValue == "" {
			return true
		}

		n := hash(filter.Seed, hashValue, if0(filter.HashVersion, 2))
		if n == nil {
			return true
		}
		if chooseVariation(*n, filter.Ranges) == -1 {
			return true
		}
	}
	return false
}

// getHashAttribute resolves the bucketing attribute (default "id")
// to its canonical string value, trying the fallback attribute when
// the primary one is missing or empty.
func (e *evaluator) getHashAttribute(key string, fallback string) (string, string) {
	if key == "" {
		key = "id"
	}

	if v, ok := e.attributes[key]; ok && !value.IsNull(v) && v.String() != "" {
		return key, v.String()
	}

	if fallback != "" {
		if v, ok := e.attributes[fallback]; ok && !value.IsNull(v) && v.String() != "" {
			return fallback, v.String()
		}
	}

	return key, ""
}
