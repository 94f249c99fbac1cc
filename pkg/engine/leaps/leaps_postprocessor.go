package leaps

import (
	"fmt"
	"slices"

	"github.com/lintang-b-s/navigatorx-leaps/pkg"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/util"
)

// SegmentData is the bookkeeping of a vertex reached by the bounded backward search.
type SegmentData struct {
	steps      int
	summaryETA float64
}

func NewSegmentData(steps int, summaryETA float64) SegmentData {
	return SegmentData{steps: steps, summaryETA: summaryETA}
}

func (sd SegmentData) GetSteps() int {
	return sd.steps
}

func (sd SegmentData) GetSummaryETA() float64 {
	return sd.summaryETA
}

type Stats struct {
	InputLength     int
	CycleFreeLength int
	OutputLength    int
	Candidates      int
	Accepted        int
	ETABefore       float64 // eta of the cycle free path
	ETAAfter        float64
}

func (s Stats) WeightSaved() float64 {
	return s.ETABefore - s.ETAAfter
}

// LeapsPostProcessor refines a route found in leaps mode. the route jumps between mwm border crossings and may contain
// loops; the processor removes the loops and then replaces sub paths with cheaper ones found by a bounded backward
// search around every position.
// one LeapsPostProcessor owns its working state and must not be shared between goroutines.
type LeapsPostProcessor[V comparable] struct {
	starter IndexGraphStarter[V]
	bfs     *BFS[V]

	inputLength    int
	path           []V
	prefixSumETA   []float64
	segmentToIndex map[V]int

	maxStep   int
	weightEps float64

	processed []V
	stats     Stats
}

func NewLeapsPostProcessor[V comparable](path []V, starter IndexGraphStarter[V]) *LeapsPostProcessor[V] {
	return NewLeapsPostProcessorWithParams(path, starter, pkg.LEAPS_MAX_STEP, pkg.LEAPS_WEIGHT_EPS)
}

func NewLeapsPostProcessorWithParams[V comparable](path []V, starter IndexGraphStarter[V], maxStep int,
	weightEps float64) *LeapsPostProcessor[V] {
	util.AssertPanic(maxStep > 0, fmt.Sprintf("max step must be positive, got %d", maxStep))
	util.AssertPanic(weightEps >= 0, fmt.Sprintf("weight epsilon must not be negative, got %f", weightEps))

	lp := &LeapsPostProcessor[V]{
		starter:     starter,
		bfs:         NewBFS(starter),
		inputLength: len(path),
		path:        EliminateCycles(path),
		maxStep:     maxStep,
		weightEps:   weightEps,
	}
	lp.init()
	return lp
}

func (lp *LeapsPostProcessor[V]) init() {
	lp.prefixSumETA = BuildPrefixSumETA(lp.path, lp.starter)

	lp.segmentToIndex = make(map[V]int, len(lp.path))
	for i, v := range lp.path {
		lp.segmentToIndex[v] = i
	}
}

// GetProcessedPath returns the refined route. its eta is never larger than the eta of the cycle free input.
func (lp *LeapsPostProcessor[V]) GetProcessedPath() []V {
	if lp.processed != nil {
		return lp.processed
	}

	candidates := lp.calculateIntervalsToRelax()
	toReplace := lp.selectIntervals(candidates)
	lp.processed = lp.assemble(toReplace)

	lp.stats = Stats{
		InputLength:     lp.inputLength,
		CycleFreeLength: len(lp.path),
		OutputLength:    len(lp.processed),
		Candidates:      len(candidates),
		Accepted:        len(toReplace),
		ETABefore:       lp.pathETA(),
		ETAAfter:        PathETA(lp.processed, lp.starter),
	}
	return lp.processed
}

// GetStats is filled by GetProcessedPath.
func (lp *LeapsPostProcessor[V]) GetStats() Stats {
	return lp.stats
}

// GetCycleFreePath returns the input after cycle elimination.
func (lp *LeapsPostProcessor[V]) GetCycleFreePath() []V {
	return lp.path
}

func (lp *LeapsPostProcessor[V]) pathETA() float64 {
	if len(lp.prefixSumETA) == 0 {
		return 0
	}
	return lp.prefixSumETA[len(lp.prefixSumETA)-1]
}

// calculateIntervalsToRelax searches backward from every position right and proposes replacing path[left..right]
// whenever the search reaches path[left] cheaper than the route itself does. candidates are sorted by descending
// weight saved.
func (lp *LeapsPostProcessor[V]) calculateIntervalsToRelax() []PathInterval[V] {
	candidates := make([]PathInterval[V], 0)

	for right := lp.maxStep; right < len(lp.path); right++ {
		segmentsAround, order := lp.calculateSegmentsAround(lp.path[right])

		for _, v := range order {
			left, ok := lp.segmentToIndex[v]
			// prefixSumETA[left-1] is needed, so the first position is never a left end
			if !ok || left == 0 || left >= right {
				continue
			}

			prevWeight := lp.prefixSumETA[right] - lp.prefixSumETA[left-1]
			curWeight := segmentsAround[v].summaryETA
			if datastructure.Le(prevWeight-lp.weightEps, curWeight) {
				continue
			}

			candidates = append(candidates, NewPathInterval(prevWeight-curWeight, left, right,
				lp.bfs.ReconstructPath(v, true)))
		}
	}

	slices.SortStableFunc(candidates, compareByWeightSavedDesc[V])
	return candidates
}

// calculateSegmentsAround runs a backward search from root capped at maxStep hops. summaryETA of a vertex is the eta of
// the found path from the vertex to root, both ends included. order lists the reached vertices in discovery order.
func (lp *LeapsPostProcessor[V]) calculateSegmentsAround(root V) (map[V]SegmentData, []V) {
	segmentsAround := map[V]SegmentData{
		root: NewSegmentData(0, lp.starter.CalculateETAWithoutPenalty(root)),
	}
	order := make([]V, 0)

	lp.bfs.Run(root, false, func(state State[V]) bool {
		if _, ok := segmentsAround[state.GetVertex()]; ok {
			return false
		}

		parent := segmentsAround[state.GetParent()]
		util.AssertPanic(parent.steps <= lp.maxStep,
			fmt.Sprintf("bounded search went %d steps, max %d", parent.steps, lp.maxStep))
		if parent.steps == lp.maxStep {
			return false
		}

		segmentsAround[state.GetVertex()] = NewSegmentData(parent.steps+1,
			parent.summaryETA+lp.starter.CalculateETAWithoutPenalty(state.GetVertex()))
		order = append(order, state.GetVertex())
		return true
	})

	return segmentsAround, order
}

// selectIntervals accepts candidates greedily by weight saved, skipping those that overlap an accepted one.
// the result is ordered by position.
func (lp *LeapsPostProcessor[V]) selectIntervals(candidates []PathInterval[V]) []PathInterval[V] {
	nonIntersecting := datastructure.NewNonIntersectingIntervals[int]()
	toReplace := make([]PathInterval[V], 0)
	for _, interval := range candidates {
		if nonIntersecting.AddInterval(interval.left, interval.right) {
			toReplace = append(toReplace, interval)
		}
	}

	slices.SortFunc(toReplace, compareDisjointByPosition[V])
	return toReplace
}

// assemble splices the replacement paths into the working path. intervals must be disjoint and ordered by position.
func (lp *LeapsPostProcessor[V]) assemble(toReplace []PathInterval[V]) []V {
	result := make([]V, 0, len(lp.path))
	prev := 0
	for _, interval := range toReplace {
		util.AssertPanic(prev <= interval.left && interval.right < len(lp.path),
			fmt.Sprintf("interval %v does not fit after position %d", interval, prev))

		result = append(result, lp.path[prev:interval.left]...)
		result = append(result, interval.path...)
		prev = interval.right + 1
	}
	result = append(result, lp.path[prev:]...)
	return result
}
