package growthbook

import (
	"net/url"
	"strconv"
)

// getEqualWeights returns numVariations weights that are all equal
// and sum to 1.
func getEqualWeights(numVariations int) []float64 {
	if numVariations < 0 {
		numVariations = 0
	}
	equal := make([]float64, numVariations)
	for i := range equal {
		equal[i] = 1.0 / float64(numVariations)
	}
	return equal
}

// getQueryStringOverride checks if an experiment variation is being
// forced via a URL query string.
//
// As an example, if the id is "my-test" and url is
// http://localhost/?my-test=1, this function returns 1.
func getQueryStringOverride(id string, u *url.URL, numVariations int) (int, bool) {
	if u == nil {
		return 0, false
	}

	v, ok := u.Query()[id]
	if !ok || len(v) != 1 {
		return 0, false
	}

	vi, err := strconv.Atoi(v[0])
	if err != nil {
		return 0, false
	}

	if vi < 0 || vi >= numVariations {
		return 0, false
	}

	return vi, true
}

// truthy imitates Javascript's truthiness rules for feature values of
// unknown type.
func truthy(v any) bool {
	if v == nil {
		return false
	}
	switch v := v.(type) {
	case string:
		return v != ""
	case bool:
		return v
	case int:
		return v != 0
	case float64:
		return v != 0
	}
	return true
}

// if0 substitutes a default for the zero value.
func if0(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
