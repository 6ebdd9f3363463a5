package condition

import (
	"encoding/json"
	"testing"

	"github.com/growthbook/growthbook-go/internal/value"
	"github.com/stretchr/testify/require"
)

func evalJSON(t *testing.T, cond string, attrs map[string]any, groups SavedGroups) bool {
	t.Helper()
	var base Base
	err := json.Unmarshal([]byte(cond), &base)
	require.NoError(t, err)
	return base.Eval(value.Obj(attrs), groups)
}

func TestBaseConditions(t *testing.T) {
	tests := []struct {
		name  string
		cond  string
		attrs map[string]any
		res   bool
	}{
		{
			"direct value match",
			`{"userId": "123"}`,
			map[string]any{"userId": "123"},
			true,
		},
		{
			"direct value mismatch",
			`{"userId": "123"}`,
			map[string]any{"userId": "42"},
			false,
		},
		{
			"null matches missing attribute",
			`{"userId": null}`,
			map[string]any{},
			true,
		},
		{
			"implicit and across fields",
			`{"country": "US", "premium": true}`,
			map[string]any{"country": "US", "premium": true},
			true,
		},
		{
			"implicit and fails on one field",
			`{"country": "US", "premium": true}`,
			map[string]any{"country": "US", "premium": false},
			false,
		},
		{
			"or",
			`{"$or": [{"country": "US"}, {"country": "CA"}]}`,
			map[string]any{"country": "CA"},
			true,
		},
		{
			"nor",
			`{"$nor": [{"country": "US"}, {"country": "CA"}]}`,
			map[string]any{"country": "FR"},
			true,
		},
		{
			"not",
			`{"$not": {"country": "US"}}`,
			map[string]any{"country": "US"},
			false,
		},
		{
			"comparison operators",
			`{"age": {"$gte": 18, "$lt": 65}}`,
			map[string]any{"age": 30},
			true,
		},
		{
			"string comparison casts",
			`{"age": {"$gte": 18}}`,
			map[string]any{"age": "21"},
			true,
		},
		{
			"in",
			`{"country": {"$in": ["US", "CA"]}}`,
			map[string]any{"country": "CA"},
			true,
		},
		{
			"nin",
			`{"country": {"$nin": ["US", "CA"]}}`,
			map[string]any{"country": "CA"},
			false,
		},
		{
			"nested path",
			`{"company.name": "Initech"}`,
			map[string]any{"company": map[string]any{"name": "Initech"}},
			true,
		},
		{
			"exists false on missing",
			`{"email": {"$exists": false}}`,
			map[string]any{},
			true,
		},
		{
			"exists true on null",
			`{"email": {"$exists": true}}`,
			map[string]any{"email": nil},
			true,
		},
		{
			"type null on missing is false",
			`{"email": {"$type": "null"}}`,
			map[string]any{},
			false,
		},
		{
			"regex",
			`{"email": {"$regex": "@example\\.com$"}}`,
			map[string]any{"email": "user@example.com"},
			true,
		},
		{
			"invalid regex never matches",
			`{"email": {"$regex": "(unclosed"}}`,
			map[string]any{"email": "anything"},
			false,
		},
		{
			"elemMatch with operators",
			`{"scores": {"$elemMatch": {"$gt": 90}}}`,
			map[string]any{"scores": []any{50, 95}},
			true,
		},
		{
			"elemMatch with nested condition",
			`{"items": {"$elemMatch": {"sku": "a1"}}}`,
			map[string]any{"items": []any{map[string]any{"sku": "a1"}}},
			true,
		},
		{
			"all",
			`{"tags": {"$all": ["a", "b"]}}`,
			map[string]any{"tags": []any{"a", "b", "c"}},
			true,
		},
		{
			"size",
			`{"tags": {"$size": 2}}`,
			map[string]any{"tags": []any{"a", "b"}},
			true,
		},
		{
			"version compare",
			`{"appVersion": {"$vgte": "2.0.0"}}`,
			map[string]any{"appVersion": "2.1.0"},
			true,
		},
		{
			"unknown operator never matches",
			`{"age": {"$near": 30}}`,
			map[string]any{"age": 30},
			false,
		},
		{
			"operator key mixed with plain key is a value match",
			`{"obj": {"$gt": 1, "x": 2}}`,
			map[string]any{"obj": map[string]any{"$gt": 1, "x": 2}},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.res, evalJSON(t, tt.cond, tt.attrs, nil))
		})
	}
}

func TestSavedGroupConditions(t *testing.T) {
	groups := SavedGroups{"beta": value.Arr("u1", "u2")}

	require.True(t, evalJSON(t, `{"id": {"$inGroup": "beta"}}`, map[string]any{"id": "u1"}, groups))
	require.False(t, evalJSON(t, `{"id": {"$inGroup": "beta"}}`, map[string]any{"id": "u3"}, groups))
	require.True(t, evalJSON(t, `{"id": {"$notInGroup": "beta"}}`, map[string]any{"id": "u3"}, groups))
}

func TestEmptyCondition(t *testing.T) {
	var base Base
	require.NoError(t, json.Unmarshal([]byte(`{}`), &base))
	require.True(t, base.Eval(value.ObjValue{}, nil))

	// A zero-valued Base also matches everything.
	require.True(t, Base{}.Eval(value.ObjValue{}, nil))
}
