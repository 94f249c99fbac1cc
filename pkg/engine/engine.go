package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/lintang-b-s/navigatorx-leaps/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/engine/leaps"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/geo"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/util"
	"go.uber.org/zap"
)

var (
	ErrEmptyPath        = errors.New("path is empty")
	ErrUnknownSegment   = errors.New("segment is not in the road graph")
	ErrDisconnectedPath = errors.New("consecutive segments are not connected")
	ErrInvalidParams    = errors.New("invalid leaps parameters")
)

// Engine refines leaps routes on one road graph. the graph is read only, every call builds its own post-processor,
// so an Engine can serve concurrent requests.
type Engine struct {
	graph     *datastructure.SegmentGraph
	log       *zap.Logger
	maxStep   int
	weightEps float64
}

func NewEngine(graphFilePath string, logger *zap.Logger, maxStep int, weightEps float64) (*Engine, error) {
	if err := validateParams(maxStep, weightEps); err != nil {
		return nil, err
	}
	logger.Info("Reading segment graph from ", zap.String("graphFilePath", graphFilePath))
	graph, err := datastructure.ReadGraph(graphFilePath)
	if err != nil {
		return nil, fmt.Errorf("read segment graph %s: %w", graphFilePath, err)
	}
	_, numComponents := graph.RunKosaraju()
	logger.Info("Segment graph loaded", zap.Int("segments", graph.NumberOfSegments()),
		zap.Int("edges", graph.NumberOfEdges()), zap.Int("stronglyConnectedComponents", numComponents))

	return NewEngineDirect(graph, logger, maxStep, weightEps)
}

func NewEngineDirect(graph *datastructure.SegmentGraph, logger *zap.Logger, maxStep int,
	weightEps float64) (*Engine, error) {
	if err := validateParams(maxStep, weightEps); err != nil {
		return nil, err
	}
	return &Engine{
		graph:     graph,
		log:       logger,
		maxStep:   maxStep,
		weightEps: weightEps,
	}, nil
}

func validateParams(maxStep int, weightEps float64) error {
	if maxStep <= 0 {
		return util.WrapErrorf(ErrInvalidParams, util.ErrBadParamInput, "max step must be positive, got %d", maxStep)
	}
	if weightEps < 0 || math.IsNaN(weightEps) {
		return util.WrapErrorf(ErrInvalidParams, util.ErrBadParamInput, "weight epsilon must not be negative, got %f",
			weightEps)
	}
	return nil
}

func (e *Engine) GetGraph() *datastructure.SegmentGraph {
	return e.graph
}

// ValidatePath checks that every segment is known and that the path can be driven segment after segment.
func (e *Engine) ValidatePath(path []datastructure.Segment) error {
	if len(path) == 0 {
		return util.WrapErrorf(ErrEmptyPath, util.ErrBadParamInput, "invalid path")
	}
	for i, s := range path {
		if !s.IsRealSegment() || !e.graph.HasSegment(s) {
			return util.WrapErrorf(ErrUnknownSegment, util.ErrBadParamInput, "segment %d %v", i, s)
		}
		if i > 0 && !e.graph.IsConnected(path[i-1], s) {
			return util.WrapErrorf(ErrDisconnectedPath, util.ErrBadParamInput, "segments %d %v and %d %v",
				i-1, path[i-1], i, s)
		}
	}
	return nil
}

func (e *Engine) Process(path []datastructure.Segment) ([]datastructure.Segment, leaps.Stats) {
	lp := leaps.NewLeapsPostProcessorWithParams(path, e.graph, e.maxStep, e.weightEps)
	processed := lp.GetProcessedPath()
	return processed, lp.GetStats()
}

// JointsToPath expands a joint route into its segment path. fake joints at the route ends are dropped.
func (e *Engine) JointsToPath(joints []datastructure.JointSegment) []datastructure.Segment {
	realJoints := make([]datastructure.JointSegment, 0, len(joints))
	for _, js := range joints {
		if js.IsRealSegment() {
			realJoints = append(realJoints, js)
		}
	}
	return datastructure.ExpandJointSegments(realJoints)
}

// RouteETA is the eta of driving path from its first segment, traffic light penalties included.
func (e *Engine) RouteETA(path []datastructure.Segment) float64 {
	eta := 0.0
	for i := 1; i < len(path); i++ {
		eta += e.graph.CalculateETA(path[i-1], path[i])
	}
	return eta
}

func (e *Engine) RouteLength(path []datastructure.Segment) float64 {
	length := 0.0
	for _, s := range path {
		id, ok := e.graph.GetSegmentId(s)
		if !ok {
			continue
		}
		length += e.graph.GetSegmentInfo(id).GetLength()
	}
	return length
}

// RouteGeometry returns the junctions along path: the start of the first segment, then the end of every segment.
func (e *Engine) RouteGeometry(path []datastructure.Segment) []geo.Coordinate {
	coords := make([]geo.Coordinate, 0, len(path)+1)
	for i, s := range path {
		if i == 0 {
			if start, ok := e.graph.GetJunction(s, false); ok {
				coords = append(coords, start)
			}
		}
		if end, ok := e.graph.GetJunction(s, true); ok {
			coords = append(coords, end)
		}
	}
	return coords
}
