package leaps

import (
	"cmp"
	"fmt"

	"github.com/lintang-b-s/navigatorx-leaps/pkg/util"
)

// PathInterval proposes replacing path[left..right] (inclusive) with a cheaper sub path.
type PathInterval[V comparable] struct {
	weightSaved float64
	left, right int
	path        []V
}

func NewPathInterval[V comparable](weightSaved float64, left, right int, path []V) PathInterval[V] {
	return PathInterval[V]{
		weightSaved: weightSaved,
		left:        left,
		right:       right,
		path:        path,
	}
}

func (pi PathInterval[V]) GetWeightSaved() float64 {
	return pi.weightSaved
}

func (pi PathInterval[V]) GetLeft() int {
	return pi.left
}

func (pi PathInterval[V]) GetRight() int {
	return pi.right
}

func (pi PathInterval[V]) GetPath() []V {
	return pi.path
}

func (pi PathInterval[V]) String() string {
	return fmt.Sprintf("PathInterval(saved: %f, [%d, %d], len: %d)", pi.weightSaved, pi.left, pi.right, len(pi.path))
}

// compareByWeightSavedDesc orders candidates by descending weight saved. ties go to the leftmost, then shortest span,
// then shortest replacement.
func compareByWeightSavedDesc[V comparable](a, b PathInterval[V]) int {
	if c := cmp.Compare(b.weightSaved, a.weightSaved); c != 0 {
		return c
	}
	if c := cmp.Compare(a.left, b.left); c != 0 {
		return c
	}
	if c := cmp.Compare(a.right, b.right); c != 0 {
		return c
	}
	return cmp.Compare(len(a.path), len(b.path))
}

// compareDisjointByPosition orders intervals that do not overlap. comparing two overlapping intervals is a bug.
func compareDisjointByPosition[V comparable](a, b PathInterval[V]) int {
	if a.left == b.left && a.right == b.right {
		return 0
	}
	util.AssertPanic(max(a.left, b.left) > min(a.right, b.right),
		fmt.Sprintf("comparing overlapping intervals [%d, %d] and [%d, %d]", a.left, a.right, b.left, b.right))
	if a.right < b.left {
		return -1
	}
	return 1
}
