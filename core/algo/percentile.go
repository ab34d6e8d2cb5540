// Package algo has the ranking math for the watch index: fractional
// percentile ranks and the weighted composition of sub-indices.
package algo

// FractionalRanks returns the percentile rank in [0,1] of each value within
// the slice. The rank of a value is the fraction of values less than or
// equal to it; tied values share the average of the positions they would
// occupy (standard fractional ranking). A single-element slice ranks 1.0
// and an empty slice returns an empty result.
func FractionalRanks(values []float64) []float64 {
	n := len(values)
	ranks := make([]float64, n)
	if n == 0 {
		return ranks
	}

	for i, v := range values {
		var less, equal int
		for _, w := range values {
			switch {
			case w < v:
				less++
			case w == v:
				equal++
			}
		}
		// Average position of the tie group, scaled to [0,1].
		ranks[i] = (float64(less) + (float64(equal)+1)/2) / float64(n)
	}
	return ranks
}
