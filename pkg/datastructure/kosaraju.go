package datastructure

import (
	"github.com/lintang-b-s/navigatorx-leaps/pkg/util"
)

// RunKosaraju finds the strongly connected components of the segment graph. it returns the component id of every
// segment and the number of components. component ids follow kosaraju's discovery order.
func (g *SegmentGraph) RunKosaraju() ([]Index, int) {
	n := Index(g.NumberOfSegments())

	order := make([]Index, 0, n)
	visited := make([]bool, n)
	for v := Index(0); v < n; v++ {
		if !visited[v] {
			g.dfs(v, &order, visited, false)
		}
	}

	order = util.ReverseG(order)

	// reset visited
	visited = make([]bool, n)
	sccs := make([]Index, n)
	numComponents := 0
	for _, v := range order {
		if visited[v] {
			continue
		}
		component := make([]Index, 0, 10)
		g.dfs(v, &component, visited, true)
		for _, u := range component {
			sccs[u] = Index(numComponents)
		}
		numComponents++
	}
	return sccs, numComponents
}

// LargestComponentSize is the number of segments in the biggest strongly connected component.
func (g *SegmentGraph) LargestComponentSize() int {
	sccs, numComponents := g.RunKosaraju()
	sizes := make([]int, numComponents)
	largest := 0
	for _, c := range sccs {
		sizes[c]++
		largest = max(largest, sizes[c])
	}
	return largest
}

func (g *SegmentGraph) dfs(v Index, output *[]Index, visited []bool, reversed bool) {
	visited[v] = true

	if !reversed {
		g.ForOutEdgesOf(v, func(head Index) {
			if !visited[head] {
				g.dfs(head, output, visited, reversed)
			}
		})
	} else {
		g.ForInEdgesOf(v, func(tail Index) {
			if !visited[tail] {
				g.dfs(tail, output, visited, reversed)
			}
		})
	}

	*output = append(*output, v)
}
