package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFractionalRanks tests percentile ranks over small batches.
func TestFractionalRanks(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected []float64
	}{
		{
			name:     "empty slice",
			values:   []float64{},
			expected: []float64{},
		},
		{
			name:     "single value",
			values:   []float64{42},
			expected: []float64{1.0},
		},
		{
			name:     "distinct values",
			values:   []float64{10, 30, 20},
			expected: []float64{1.0 / 3, 1.0, 2.0 / 3},
		},
		{
			name:     "two way tie averages positions",
			values:   []float64{5, 5, 10},
			expected: []float64{0.5, 0.5, 1.0},
		},
		{
			name:     "all equal",
			values:   []float64{7, 7, 7, 7},
			expected: []float64{0.625, 0.625, 0.625, 0.625},
		},
		{
			name:     "negative values",
			values:   []float64{-3, 0, -1},
			expected: []float64{1.0 / 3, 1.0, 2.0 / 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FractionalRanks(tt.values)
			assert.Len(t, result, len(tt.expected))
			for i := range tt.expected {
				assert.InDelta(t, tt.expected[i], result[i], 1e-9, "index %d", i)
			}
		})
	}
}

// TestFractionalRanksBounds checks that every rank lands in (0, 1].
func TestFractionalRanksBounds(t *testing.T) {
	values := []float64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5}
	for _, r := range FractionalRanks(values) {
		assert.Greater(t, r, 0.0)
		assert.LessOrEqual(t, r, 1.0)
	}
}
