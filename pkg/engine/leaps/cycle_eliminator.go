package leaps

// EliminateCycles removes loops from a path that visits some vertex more than once: whenever a vertex occurs again,
// everything from its earlier occurrence up to the later one is skipped.
// it is a greedy "jump to the last time I was here" pass, not a search for the shortest loop free walk. an emitted
// position never has a later occurrence of its vertex, so the result has no duplicates, and it stays a walk because the
// vertex after a jump target follows the same vertex in the input.
func EliminateCycles[V comparable](path []V) []V {
	jumps := make(map[int]int)
	lastIndex := make(map[V]int, len(path))
	for i, v := range path {
		if prev, ok := lastIndex[v]; ok {
			jumps[prev] = i
		}
		lastIndex[v] = i
	}

	result := make([]V, 0, len(path))
	for i := 0; i < len(path); i++ {
		// targets strictly increase along a chain
		for target, ok := jumps[i]; ok; target, ok = jumps[i] {
			i = target
		}
		result = append(result, path[i])
	}
	return result
}
