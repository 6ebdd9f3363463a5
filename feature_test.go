package growthbook

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, featuresJSON string, attrs Attributes) *Client {
	t.Helper()
	client, err := NewClient(context.TODO(), WithAttributes(attrs))
	require.NoError(t, err)
	require.NoError(t, client.SetJSONFeatures(featuresJSON))
	return client
}

func TestEvalFeatureUnknown(t *testing.T) {
	client := newTestClient(t, `{}`, Attributes{"id": "u1"})

	res := client.EvalFeature(context.TODO(), "x")
	require.Equal(t, &FeatureResult{
		Value:  nil,
		On:     false,
		Off:    true,
		Source: UnknownFeatureResultSource,
	}, res)
}

func TestEvalFeatureDefaultValue(t *testing.T) {
	client := newTestClient(t, `{"x": {"defaultValue": 42}}`, Attributes{"id": "u1"})

	res := client.EvalFeature(context.TODO(), "x")
	require.Equal(t, 42.0, res.Value)
	require.Equal(t, DefaultValueResultSource, res.Source)
	require.True(t, res.On)
	require.False(t, res.Off)
}

func TestEvalFeatureForcedByCondition(t *testing.T) {
	features := `{"x": {
		"defaultValue": false,
		"rules": [{"id": "r1", "condition": {"browser": "chrome"}, "force": true}]
	}}`

	t.Run("condition matches", func(t *testing.T) {
		client := newTestClient(t, features, Attributes{"id": "u", "browser": "chrome"})
		res := client.EvalFeature(context.TODO(), "x")
		require.Equal(t, true, res.Value)
		require.Equal(t, ForceResultSource, res.Source)
		require.Equal(t, "r1", res.RuleId)
	})

	t.Run("condition does not match", func(t *testing.T) {
		client := newTestClient(t, features, Attributes{"id": "u", "browser": "safari"})
		res := client.EvalFeature(context.TODO(), "x")
		require.Equal(t, false, res.Value)
		require.Equal(t, DefaultValueResultSource, res.Source)
	})
}

func TestEvalFeatureRollout(t *testing.T) {
	features := `{"dark-mode": {
		"defaultValue": false,
		"rules": [{"force": true, "coverage": 0.5}]
	}}`

	// hash("dark-mode", "1", 1) == 0.072, hash("dark-mode", "3", 1) == 0.742
	t.Run("user inside coverage", func(t *testing.T) {
		client := newTestClient(t, features, Attributes{"id": "1"})
		res := client.EvalFeature(context.TODO(), "dark-mode")
		require.Equal(t, true, res.Value)
		require.Equal(t, ForceResultSource, res.Source)
	})

	t.Run("user outside coverage", func(t *testing.T) {
		client := newTestClient(t, features, Attributes{"id": "3"})
		res := client.EvalFeature(context.TODO(), "dark-mode")
		require.Equal(t, false, res.Value)
		require.Equal(t, DefaultValueResultSource, res.Source)
	})

	t.Run("missing hash attribute excludes", func(t *testing.T) {
		client := newTestClient(t, features, Attributes{})
		res := client.EvalFeature(context.TODO(), "dark-mode")
		require.Equal(t, DefaultValueResultSource, res.Source)
	})
}

func TestEvalFeatureExperimentRule(t *testing.T) {
	features := `{"checkout": {
		"defaultValue": "none",
		"rules": [{"variations": ["control", "treatment"]}]
	}}`

	// Seed defaults to the feature id:
	// hash("checkout", "2", 1) == 0.369 -> variation 0
	// hash("checkout", "1", 1) == 0.904 -> variation 1
	t.Run("variation 0", func(t *testing.T) {
		client := newTestClient(t, features, Attributes{"id": "2"})
		res := client.EvalFeature(context.TODO(), "checkout")
		require.Equal(t, "control", res.Value)
		require.Equal(t, ExperimentResultSource, res.Source)
		require.True(t, res.InExperiment())
		require.Equal(t, 0, res.ExperimentResult.VariationId)
		require.True(t, res.ExperimentResult.HashUsed)
		require.Equal(t, "checkout", res.ExperimentResult.FeatureId)
	})

	t.Run("variation 1", func(t *testing.T) {
		client := newTestClient(t, features, Attributes{"id": "1"})
		res := client.EvalFeature(context.TODO(), "checkout")
		require.Equal(t, "treatment", res.Value)
		require.Equal(t, 1, res.ExperimentResult.VariationId)
	})

	t.Run("deterministic", func(t *testing.T) {
		client := newTestClient(t, features, Attributes{"id": "2"})
		first := client.EvalFeature(context.TODO(), "checkout")
		second := client.EvalFeature(context.TODO(), "checkout")
		require.Equal(t, first, second)
	})
}

func TestEvalFeatureNamespace(t *testing.T) {
	features := `{"checkout": {
		"defaultValue": "none",
		"rules": [{"variations": ["a", "b"], "namespace": ["exclusive", 0, 0.4]}]
	}}`

	// hash("__exclusive", "2", 1) == 0.121, hash("__exclusive", "3", 1) == 0.456
	t.Run("user in namespace", func(t *testing.T) {
		client := newTestClient(t, features, Attributes{"id": "2"})
		res := client.EvalFeature(context.TODO(), "checkout")
		require.Equal(t, ExperimentResultSource, res.Source)
	})

	t.Run("user outside namespace", func(t *testing.T) {
		client := newTestClient(t, features, Attributes{"id": "3"})
		res := client.EvalFeature(context.TODO(), "checkout")
		require.Equal(t, DefaultValueResultSource, res.Source)
	})
}

func TestEvalFeaturePrerequisites(t *testing.T) {
	t.Run("gating prerequisite met", func(t *testing.T) {
		features := `{
			"parent": {"defaultValue": true},
			"child": {
				"defaultValue": "off",
				"rules": [{
					"parentConditions": [{"id": "parent", "condition": {"value": true}, "gate": true}],
					"force": "on"
				}]
			}
		}`
		client := newTestClient(t, features, Attributes{"id": "u1"})
		res := client.EvalFeature(context.TODO(), "child")
		require.Equal(t, "on", res.Value)
		require.Equal(t, ForceResultSource, res.Source)
	})

	t.Run("gating prerequisite failed blocks the feature", func(t *testing.T) {
		features := `{
			"parent": {"defaultValue": false},
			"child": {
				"defaultValue": "off",
				"rules": [{
					"parentConditions": [{"id": "parent", "condition": {"value": true}, "gate": true}],
					"force": "on"
				}]
			}
		}`
		client := newTestClient(t, features, Attributes{"id": "u1"})
		res := client.EvalFeature(context.TODO(), "child")
		require.Equal(t, nil, res.Value)
		require.Equal(t, PrerequisiteResultSource, res.Source)
	})

	t.Run("non-gating prerequisite failure skips the rule", func(t *testing.T) {
		features := `{
			"parent": {"defaultValue": false},
			"child": {
				"defaultValue": "off",
				"rules": [{
					"parentConditions": [{"id": "parent", "condition": {"value": true}}],
					"force": "on"
				}]
			}
		}`
		client := newTestClient(t, features, Attributes{"id": "u1"})
		res := client.EvalFeature(context.TODO(), "child")
		require.Equal(t, "off", res.Value)
		require.Equal(t, DefaultValueResultSource, res.Source)
	})

	t.Run("cyclic prerequisites", func(t *testing.T) {
		features := `{
			"a": {
				"defaultValue": 1,
				"rules": [{"parentConditions": [{"id": "b", "condition": {"value": 2}}], "force": 10}]
			},
			"b": {
				"defaultValue": 2,
				"rules": [{"parentConditions": [{"id": "a", "condition": {"value": 1}}], "force": 20}]
			}
		}`
		client := newTestClient(t, features, Attributes{"id": "u1"})

		for _, key := range []string{"a", "b"} {
			res := client.EvalFeature(context.TODO(), key)
			require.Equal(t, nil, res.Value, "feature %s", key)
			require.Equal(t, CyclicPrerequisiteResultSource, res.Source, "feature %s", key)
		}
	})
}

func TestEvalFeatureFilters(t *testing.T) {
	// Filters default to hash version 2.
	// hash v2("filter-seed", "1") needs to fall inside [0, 0.5) for
	// inclusion; use ranges chosen around the actual hash values.
	features := `{"x": {
		"defaultValue": false,
		"rules": [{
			"force": true,
			"filters": [{"seed": "filter-seed", "ranges": [[0, 0.5]]}]
		}]
	}}`

	includedID, excludedID := "", ""
	for _, id := range []string{"1", "2", "3", "user-1", "user-2"} {
		n := hash("filter-seed", id, 2)
		if *n < 0.5 {
			includedID = id
		} else {
			excludedID = id
		}
	}
	require.NotEmpty(t, includedID)
	require.NotEmpty(t, excludedID)

	t.Run("included", func(t *testing.T) {
		client := newTestClient(t, features, Attributes{"id": includedID})
		res := client.EvalFeature(context.TODO(), "x")
		require.Equal(t, ForceResultSource, res.Source)
	})

	t.Run("filtered out", func(t *testing.T) {
		client := newTestClient(t, features, Attributes{"id": excludedID})
		res := client.EvalFeature(context.TODO(), "x")
		require.Equal(t, DefaultValueResultSource, res.Source)
	})
}

func TestFeatureUsageCallback(t *testing.T) {
	var usedKey string
	var usedResult *FeatureResult
	client, err := NewClient(context.TODO(),
		WithAttributes(Attributes{"id": "u1"}),
		WithFeatures(FeatureMap{"x": {DefaultValue: 1}}),
		WithFeatureUsageCallback(func(_ context.Context, key string, res *FeatureResult, _ any) {
			usedKey = key
			usedResult = res
		}),
	)
	require.NoError(t, err)

	res := client.EvalFeature(context.TODO(), "x")
	require.Equal(t, "x", usedKey)
	require.Equal(t, res, usedResult)
}
