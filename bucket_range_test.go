package growthbook

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetBucketRanges(t *testing.T) {
	t.Run("full coverage equal weights", func(t *testing.T) {
		ranges := getBucketRanges(2, 1, nil)
		requireRangesEqual(t, []BucketRange{{0, 0.5}, {0.5, 1}}, ranges)
	})

	t.Run("partial coverage carves a gap from every variation", func(t *testing.T) {
		ranges := getBucketRanges(2, 0.5, []float64{0.4, 0.6})
		requireRangesEqual(t, []BucketRange{{0, 0.2}, {0.4, 0.7}}, ranges)
	})

	t.Run("zero coverage yields empty ranges", func(t *testing.T) {
		ranges := getBucketRanges(2, 0, nil)
		requireRangesEqual(t, []BucketRange{{0, 0}, {0.5, 0.5}}, ranges)
	})

	t.Run("coverage is clamped", func(t *testing.T) {
		requireRangesEqual(t, getBucketRanges(2, 1, nil), getBucketRanges(2, 1.5, nil))
		requireRangesEqual(t, getBucketRanges(2, 0, nil), getBucketRanges(2, -0.5, nil))
	})

	t.Run("weight count mismatch falls back to equal weights", func(t *testing.T) {
		requireRangesEqual(t, getBucketRanges(2, 1, nil), getBucketRanges(2, 1, []float64{0.4, 0.1, 0.5}))
	})

	t.Run("weights outside tolerance fall back to equal weights", func(t *testing.T) {
		requireRangesEqual(t, getBucketRanges(2, 1, nil), getBucketRanges(2, 1, []float64{0.4, 0.1}))
		requireRangesEqual(t, getBucketRanges(2, 1, nil), getBucketRanges(2, 1, []float64{0.7, 0.6}))
	})

	t.Run("weights within tolerance are kept", func(t *testing.T) {
		ranges := getBucketRanges(2, 1, []float64{0.5, 0.5005})
		requireRangesEqual(t, []BucketRange{{0, 0.5}, {0.5, 1.0005}}, ranges)
	})
}

func requireRangesEqual(t *testing.T, expected, actual []BucketRange) {
	t.Helper()
	require.Equal(t, len(expected), len(actual))
	for i := range expected {
		require.InDelta(t, expected[i].Min, actual[i].Min, 1e-9, "range %d min", i)
		require.InDelta(t, expected[i].Max, actual[i].Max, 1e-9, "range %d max", i)
	}
}

func TestChooseVariation(t *testing.T) {
	ranges := []BucketRange{{0, 0.5}, {0.5, 1}}

	require.Equal(t, 0, chooseVariation(0, ranges))
	require.Equal(t, 0, chooseVariation(0.49, ranges))
	require.Equal(t, 1, chooseVariation(0.5, ranges))
	require.Equal(t, 1, chooseVariation(0.99, ranges))
	require.Equal(t, -1, chooseVariation(1, ranges))

	gapped := []BucketRange{{0, 0.2}, {0.4, 0.7}}
	require.Equal(t, -1, chooseVariation(0.3, gapped))
	require.Equal(t, 1, chooseVariation(0.4, gapped))
}

func TestBucketRangeJSON(t *testing.T) {
	var r BucketRange
	require.NoError(t, json.Unmarshal([]byte(`[0.2, 0.7]`), &r))
	require.Equal(t, BucketRange{0.2, 0.7}, r)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	require.JSONEq(t, `[0.2, 0.7]`, string(data))
}
