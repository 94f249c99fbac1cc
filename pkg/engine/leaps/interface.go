package leaps

// IndexGraphStarter is the road graph seen by the post-processor.
// V is the vertex type of the graph, e.g. datastructure.Segment or datastructure.JointSegment.
type IndexGraphStarter[V comparable] interface {
	// ForEdgesOf calls handle for every v' with an edge v->v' (isOutgoing) or v'->v.
	ForEdgesOf(v V, isOutgoing bool, handle func(to V))
	// CalculateETAWithoutPenalty returns the traversal time of v in seconds, without turn or traffic light penalties.
	CalculateETAWithoutPenalty(v V) float64
}
