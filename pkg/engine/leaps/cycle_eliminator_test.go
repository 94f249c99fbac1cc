package leaps

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEliminateCycles(t *testing.T) {
	testCases := []struct {
		name string
		path []string
		want []string
	}{
		{
			name: "empty path",
			path: []string{},
			want: []string{},
		},
		{
			name: "single segment",
			path: []string{"s0"},
			want: []string{"s0"},
		},
		{
			name: "no cycle",
			path: []string{"s0", "s1", "s2"},
			want: []string{"s0", "s1", "s2"},
		},
		{
			name: "loop back to the start",
			path: []string{"s0", "s1", "s2", "s0", "s3"},
			want: []string{"s0", "s3"},
		},
		{
			name: "loop in the middle",
			path: []string{"s0", "s1", "s2", "s3", "s1", "s4"},
			want: []string{"s0", "s1", "s4"},
		},
		{
			name: "chained jumps",
			path: []string{"a", "b", "a", "c", "a", "d"},
			want: []string{"a", "d"},
		},
		{
			name: "nested loops",
			path: []string{"a", "b", "c", "b", "a", "e"},
			want: []string{"a", "e"},
		},
		{
			name: "interleaved repeats",
			path: []string{"a", "b", "a", "c", "b", "d"},
			want: []string{"a", "c", "b", "d"},
		},
		{
			name: "same segment twice in a row",
			path: []string{"a", "b", "b", "c"},
			want: []string{"a", "b", "c"},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EliminateCycles(tt.path))
		})
	}
}

func TestEliminateCyclesProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabet := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	for iter := 0; iter < 500; iter++ {
		path := make([]string, rng.Intn(30))
		for i := range path {
			path[i] = alphabet[rng.Intn(len(alphabet))]
		}

		once := EliminateCycles(path)

		seen := make(map[string]struct{}, len(once))
		for _, v := range once {
			_, dup := seen[v]
			assert.False(t, dup, "duplicate %s in %v from %v", v, once, path)
			seen[v] = struct{}{}
		}

		assert.Equal(t, once, EliminateCycles(once), "idempotent for %v", path)

		if len(path) > 0 {
			assert.Equal(t, path[len(path)-1], once[len(once)-1], "last segment is kept")
			assert.Equal(t, path[0], once[0], "first segment is kept")
		}
	}
}
