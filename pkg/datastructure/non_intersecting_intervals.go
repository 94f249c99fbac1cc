package datastructure

import (
	"fmt"

	"github.com/lintang-b-s/navigatorx-leaps/pkg/util"
	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints"
)

type IntervalBound interface {
	constraints.Signed | constraints.Float | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// NonIntersectingIntervals keeps pairwise disjoint closed intervals [left, right] ordered by left endpoint.
type NonIntersectingIntervals[T IntervalBound] struct {
	intervals *btree.Map[T, T] // left -> right
}

func NewNonIntersectingIntervals[T IntervalBound]() *NonIntersectingIntervals[T] {
	return &NonIntersectingIntervals[T]{
		intervals: new(btree.Map[T, T]),
	}
}

// Intersects reports whether [left, right] overlaps a stored interval.
// stored intervals are disjoint, so only the first interval with l >= left and its predecessor can overlap.
func (ni *NonIntersectingIntervals[T]) Intersects(left, right T) bool {
	util.AssertPanic(left <= right, fmt.Sprintf("invalid interval [%v, %v]", left, right))

	intersects := false
	ni.intervals.Ascend(left, func(l, r T) bool {
		intersects = overlaps(left, right, l, r)
		return false
	})
	if intersects {
		return true
	}

	ni.intervals.Descend(left, func(l, r T) bool {
		intersects = overlaps(left, right, l, r)
		return false
	})
	return intersects
}

// AddInterval stores [left, right] unless it overlaps a stored interval.
func (ni *NonIntersectingIntervals[T]) AddInterval(left, right T) bool {
	if ni.Intersects(left, right) {
		return false
	}

	ni.intervals.Set(left, right)
	return true
}

func (ni *NonIntersectingIntervals[T]) Len() int {
	return ni.intervals.Len()
}

// ForIntervals calls handle for every stored interval in ascending left order.
func (ni *NonIntersectingIntervals[T]) ForIntervals(handle func(left, right T)) {
	ni.intervals.Scan(func(l, r T) bool {
		handle(l, r)
		return true
	})
}

func overlaps[T IntervalBound](l1, r1, l2, r2 T) bool {
	return max(l1, l2) <= min(r1, r2)
}
