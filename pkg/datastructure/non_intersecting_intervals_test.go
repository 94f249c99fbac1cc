package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type interval struct {
	left, right int
}

func collectIntervals(ni *NonIntersectingIntervals[int]) []interval {
	res := make([]interval, 0, ni.Len())
	ni.ForIntervals(func(left, right int) {
		res = append(res, interval{left, right})
	})
	return res
}

func TestNonIntersectingIntervalsAddInterval(t *testing.T) {
	testCases := []struct {
		name      string
		intervals []interval
		want      []bool
		wantSet   []interval
	}{
		{
			name:      "overlapping second interval is rejected",
			intervals: []interval{{0, 5}, {3, 8}},
			want:      []bool{true, false},
			wantSet:   []interval{{0, 5}},
		},
		{
			name:      "adjacent second interval is accepted",
			intervals: []interval{{0, 5}, {6, 8}},
			want:      []bool{true, true},
			wantSet:   []interval{{0, 5}, {6, 8}},
		},
		{
			name:      "shared endpoint intersects",
			intervals: []interval{{0, 5}, {5, 8}},
			want:      []bool{true, false},
			wantSet:   []interval{{0, 5}},
		},
		{
			name:      "interval inside stored interval",
			intervals: []interval{{0, 10}, {3, 4}},
			want:      []bool{true, false},
			wantSet:   []interval{{0, 10}},
		},
		{
			name:      "interval covering stored interval",
			intervals: []interval{{3, 4}, {0, 10}},
			want:      []bool{true, false},
			wantSet:   []interval{{3, 4}},
		},
		{
			name:      "gap filled between two intervals",
			intervals: []interval{{10, 12}, {0, 2}, {3, 9}, {13, 13}, {11, 11}},
			want:      []bool{true, true, true, true, false},
			wantSet:   []interval{{0, 2}, {3, 9}, {10, 12}, {13, 13}},
		},
		{
			name:      "predecessor overlaps from the left",
			intervals: []interval{{0, 7}, {20, 25}, {5, 15}},
			want:      []bool{true, true, false},
			wantSet:   []interval{{0, 7}, {20, 25}},
		},
		{
			name:      "same left endpoint",
			intervals: []interval{{4, 4}, {4, 9}},
			want:      []bool{true, false},
			wantSet:   []interval{{4, 4}},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			ni := NewNonIntersectingIntervals[int]()
			for i, iv := range tt.intervals {
				assert.Equal(t, tt.want[i], ni.AddInterval(iv.left, iv.right), "interval %v", iv)
			}
			assert.Equal(t, tt.wantSet, collectIntervals(ni))
		})
	}
}

func TestNonIntersectingIntervalsIntersects(t *testing.T) {
	ni := NewNonIntersectingIntervals[int]()
	require.True(t, ni.AddInterval(10, 20))
	require.True(t, ni.AddInterval(30, 40))

	assert.False(t, ni.Intersects(0, 9))
	assert.False(t, ni.Intersects(21, 29))
	assert.False(t, ni.Intersects(41, 100))
	assert.True(t, ni.Intersects(0, 10))
	assert.True(t, ni.Intersects(20, 30))
	assert.True(t, ni.Intersects(15, 15))
	assert.True(t, ni.Intersects(0, 100))
	assert.Equal(t, 2, ni.Len())
}

func TestNonIntersectingIntervalsInvalidInterval(t *testing.T) {
	ni := NewNonIntersectingIntervals[int]()
	assert.Panics(t, func() {
		ni.AddInterval(5, 4)
	})
	assert.Equal(t, 0, ni.Len())
}

func TestNonIntersectingIntervalsFloat(t *testing.T) {
	ni := NewNonIntersectingIntervals[float64]()
	assert.True(t, ni.AddInterval(0.5, 1.5))
	assert.False(t, ni.AddInterval(1.5, 2.0))
	assert.True(t, ni.AddInterval(1.6, 2.0))
}
