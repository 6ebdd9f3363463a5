package growthbook

import "encoding/json"

// BucketRange is a half-open interval [Min, Max) within [0, 1].
type BucketRange struct {
	Min float64
	Max float64
}

func (r *BucketRange) InRange(n float64) bool {
	return n >= r.Min && n < r.Max
}

func (r *BucketRange) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	err := json.Unmarshal(data, &pair)
	if err != nil {
		return err
	}
	r.Min = pair[0]
	r.Max = pair[1]
	return nil
}

func (r BucketRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{r.Min, r.Max})
}

// getBucketRanges converts an experiment's coverage and variation
// weights into bucket ranges, one per variation. The cumulative
// accumulator advances by the full weight while each range only spans
// coverage*weight, which is what makes partial coverage carve a gap
// out of every variation instead of truncating the last one.
func getBucketRanges(numVariations int, coverage float64, weights []float64) []BucketRange {
	if coverage < 0 {
		logger.Warn("Experiment coverage must be greater than or equal to 0")
		coverage = 0
	}
	if coverage > 1 {
		logger.Warn("Experiment coverage must be less than or equal to 1")
		coverage = 1
	}

	// Default to equal weights if missing or invalid.
	if len(weights) == 0 {
		weights = getEqualWeights(numVariations)
	}
	if len(weights) != numVariations {
		logger.Warn("Experiment weights and variations arrays must be the same length")
		weights = getEqualWeights(numVariations)
	}

	// If weights don't add up to 1 (or close to it), default to equal
	// weights.
	totalWeight := 0.0
	for i := range weights {
		totalWeight += weights[i]
	}
	if totalWeight < 0.99 || totalWeight > 1.01 {
		logger.Warn("Experiment weights must add up to 1")
		weights = getEqualWeights(numVariations)
	}

	cumulative := 0.0
	ranges := make([]BucketRange, len(weights))
	for i := range weights {
		start := cumulative
		cumulative += weights[i]
		ranges[i] = BucketRange{start, start + coverage*weights[i]}
	}
	return ranges
}

// chooseVariation returns the index of the first bucket range
// containing the hash, or -1 if the hash falls outside all ranges.
func chooseVariation(n float64, ranges []BucketRange) int {
	for i := range ranges {
		if ranges[i].InRange(n) {
			return i
		}
	}
	return -1
}
