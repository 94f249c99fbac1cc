package leaps

import (
	"fmt"

	"github.com/lintang-b-s/navigatorx-leaps/pkg/util"
)

type State[V comparable] struct {
	vertex V
	parent V
}

func NewState[V comparable](vertex, parent V) State[V] {
	return State[V]{vertex: vertex, parent: parent}
}

func (s State[V]) GetVertex() V {
	return s.vertex
}

func (s State[V]) GetParent() V {
	return s.parent
}

// BFS explores the graph level by level from a root. the visitor decides whether a discovered vertex is expanded,
// BFS itself has no depth limit.
// parents of the last Run are kept for ReconstructPath, so a BFS must not be shared between goroutines.
type BFS[V comparable] struct {
	graph   IndexGraphStarter[V]
	root    V
	parents map[V]V
	hasRun  bool
}

func NewBFS[V comparable](graph IndexGraphStarter[V]) *BFS[V] {
	return &BFS[V]{
		graph:   graph,
		parents: make(map[V]V),
	}
}

// Run expands from start through outgoing (isOutgoing) or incoming edges. visit is called once for every
// (vertex, parent) pair whose vertex was not visited yet; returning false drops the vertex, it is neither expanded nor
// marked visited.
func (bfs *BFS[V]) Run(start V, isOutgoing bool, visit func(state State[V]) bool) {
	clear(bfs.parents)
	bfs.root = start
	bfs.hasRun = true

	visited := map[V]struct{}{start: {}}
	queue := []V{start}

	for head := 0; head < len(queue); head++ {
		current := queue[head]
		bfs.graph.ForEdgesOf(current, isOutgoing, func(child V) {
			if _, ok := visited[child]; ok {
				return
			}
			if !visit(NewState(child, current)) {
				return
			}
			bfs.parents[child] = current
			visited[child] = struct{}{}
			queue = append(queue, child)
		})
	}
}

// ReconstructPath returns the vertices between the root of the last Run and v: root..v, or v..root when reverse is set.
// for a backward Run, v..root is the travel order.
func (bfs *BFS[V]) ReconstructPath(v V, reverse bool) []V {
	_, visited := bfs.parents[v]
	util.AssertPanic(bfs.hasRun && (visited || v == bfs.root),
		fmt.Sprintf("vertex %v was not visited by the last bfs run", v))

	path := []V{v}
	for cur := v; cur != bfs.root; {
		cur = bfs.parents[cur]
		path = append(path, cur)
	}

	if reverse {
		return path
	}
	return util.ReverseG(path)
}
