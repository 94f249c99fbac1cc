package leaps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBFSRunVisitsEveryEdgeOnce(t *testing.T) {
	// a -> b -> d, a -> c -> d, d -> e
	g := newTestGraph().
		addEdge("a", "b").addEdge("a", "c").
		addEdge("b", "d").addEdge("c", "d").
		addEdge("d", "e")

	bfs := NewBFS[string](g)

	var states []State[string]
	bfs.Run("a", true, func(state State[string]) bool {
		states = append(states, state)
		return true
	})

	assert.Equal(t, []State[string]{
		NewState("b", "a"),
		NewState("c", "a"),
		NewState("d", "b"),
		NewState("e", "d"),
	}, states)

	assert.Equal(t, []string{"a", "b", "d", "e"}, bfs.ReconstructPath("e", false))
	assert.Equal(t, []string{"e", "d", "b", "a"}, bfs.ReconstructPath("e", true))
	assert.Equal(t, []string{"a"}, bfs.ReconstructPath("a", false))
}

func TestBFSRunBackward(t *testing.T) {
	g := newTestGraph().addChain(1, "a", "b", "c", "d")

	bfs := NewBFS[string](g)
	var vertices []string
	bfs.Run("d", false, func(state State[string]) bool {
		vertices = append(vertices, state.GetVertex())
		return true
	})

	assert.Equal(t, []string{"c", "b", "a"}, vertices)
	// reversed reconstruction of a backward search is the travel order
	assert.Equal(t, []string{"a", "b", "c", "d"}, bfs.ReconstructPath("a", true))
}

func TestBFSPruning(t *testing.T) {
	// a -> b -> c, a -> x -> c
	g := newTestGraph().
		addEdge("a", "b").addEdge("b", "c").
		addEdge("a", "x").addEdge("x", "c")

	bfs := NewBFS[string](g)
	bfs.Run("a", true, func(state State[string]) bool {
		// c is dropped when reached from b and offered again from x
		return !(state.GetVertex() == "c" && state.GetParent() == "b")
	})

	assert.Equal(t, []string{"a", "x", "c"}, bfs.ReconstructPath("c", false))
	assert.Panics(t, func() {
		bfs.Run("a", true, func(state State[string]) bool {
			return state.GetVertex() != "c"
		})
		bfs.ReconstructPath("c", false)
	})
}

func TestBFSResetsBetweenRuns(t *testing.T) {
	g := newTestGraph().addChain(1, "a", "b", "c").addChain(1, "x", "y")

	bfs := NewBFS[string](g)
	bfs.Run("a", true, func(State[string]) bool { return true })
	require.Equal(t, []string{"a", "b", "c"}, bfs.ReconstructPath("c", false))

	bfs.Run("x", true, func(State[string]) bool { return true })
	assert.Equal(t, []string{"x", "y"}, bfs.ReconstructPath("y", false))
	assert.Panics(t, func() {
		bfs.ReconstructPath("c", false)
	})
}

func TestBFSReconstructBeforeRun(t *testing.T) {
	bfs := NewBFS[string](newTestGraph())
	assert.Panics(t, func() {
		bfs.ReconstructPath("a", false)
	})
}
