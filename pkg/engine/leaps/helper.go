package leaps

// BuildPrefixSumETA returns p with p[0] = 0 and p[i] = p[i-1] + eta(path[i]): cost is attached to entering a vertex,
// so eta(path[left..right]) = p[right] - p[left-1] for left > 0.
func BuildPrefixSumETA[V comparable](path []V, starter IndexGraphStarter[V]) []float64 {
	prefixSum := make([]float64, len(path))
	for i := 1; i < len(path); i++ {
		prefixSum[i] = prefixSum[i-1] + starter.CalculateETAWithoutPenalty(path[i])
	}
	return prefixSum
}

// PathETA is the eta of moving along path from its first vertex, the same convention as BuildPrefixSumETA.
func PathETA[V comparable](path []V, starter IndexGraphStarter[V]) float64 {
	eta := 0.0
	for i := 1; i < len(path); i++ {
		eta += starter.CalculateETAWithoutPenalty(path[i])
	}
	return eta
}
