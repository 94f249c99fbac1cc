package usecases

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/concurrent"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/engine/leaps"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/geo"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/util"
	"go.uber.org/zap"
)

type RouteResult struct {
	Path           []datastructure.Segment
	ETABefore      float64
	ETAAfter       float64
	TotalETA       float64
	LengthMeters   float64
	GeometryMeters float64
	Polyline       string
	Stats          leaps.Stats
}

type BatchResult struct {
	Route RouteResult
	Err   error
}

type LeapsService struct {
	log     *zap.Logger
	engine  LeapsEngine
	metrics Metrics
	cache   *lru.Cache[string, RouteResult]
	workers int
}

func NewLeapsService(log *zap.Logger, engine LeapsEngine, metrics Metrics, cacheSize, workers int) (*LeapsService, error) {
	cache, err := lru.New[string, RouteResult](cacheSize)
	if err != nil {
		return nil, err
	}
	return &LeapsService{
		log:     log,
		engine:  engine,
		metrics: metrics,
		cache:   cache,
		workers: workers,
	}, nil
}

// ProcessPath validates path, removes its detours and describes the refined route.
func (ls *LeapsService) ProcessPath(ctx context.Context, path []datastructure.Segment) (RouteResult, error) {
	if err := ctx.Err(); err != nil {
		return RouteResult{}, err
	}
	if err := ls.engine.ValidatePath(path); err != nil {
		ls.metrics.ObserveRejected()
		return RouteResult{}, err
	}

	key := routeKey(path)
	if res, ok := ls.cache.Get(key); ok {
		ls.metrics.ObserveCacheHit()
		return res, nil
	}

	processed, stats := ls.engine.Process(path)
	coords := ls.engine.RouteGeometry(processed)

	res := RouteResult{
		Path:           processed,
		ETABefore:      stats.ETABefore,
		ETAAfter:       stats.ETAAfter,
		TotalETA:       ls.engine.RouteETA(processed),
		LengthMeters:   ls.engine.RouteLength(processed),
		GeometryMeters: geo.PolylineLength(coords),
		Polyline:       geo.PolylineFromCoords(coords),
		Stats:          stats,
	}
	ls.cache.Add(key, res)
	ls.metrics.ObserveProcessed(stats.WeightSaved(), stats.Accepted)

	ls.log.Debug("leaps post-processing done", zap.Int("inputLength", stats.InputLength),
		zap.Int("outputLength", stats.OutputLength), zap.Int("candidates", stats.Candidates),
		zap.Int("accepted", stats.Accepted), zap.Float64("etaSaved", stats.WeightSaved()))
	return res, nil
}

// ProcessJoints expands a joint route and processes it like ProcessPath.
func (ls *LeapsService) ProcessJoints(ctx context.Context, joints []datastructure.JointSegment) (RouteResult, error) {
	return ls.ProcessPath(ctx, ls.engine.JointsToPath(joints))
}

// ProcessBatch processes every path on the worker pool. a failing path does not fail the batch.
func (ls *LeapsService) ProcessBatch(ctx context.Context, paths [][]datastructure.Segment) ([]BatchResult, error) {
	results, err := concurrent.Map(ctx, ls.workers, paths, ls.processBatchItem(ctx))
	if err != nil {
		ls.log.Warn("leaps batch interrupted", zap.Int("paths", len(paths)), zap.Error(err))
		return nil, err
	}
	return results, nil
}

// processBatchItem runs on worker goroutines, out of reach of the http panic recovery, so a failed contract check is
// turned into the item's error.
func (ls *LeapsService) processBatchItem(ctx context.Context) concurrent.JobFunc[[]datastructure.Segment, BatchResult] {
	return func(path []datastructure.Segment) (res BatchResult) {
		defer func() {
			if r := recover(); r != nil {
				ls.log.Error("panic while processing batch path", zap.Int("pathLength", len(path)), zap.Any("panic", r))
				res = BatchResult{Err: util.WrapErrorf(fmt.Errorf("%v", r), util.ErrInternalServerError,
					"leaps post-processing failed")}
			}
		}()

		route, err := ls.ProcessPath(ctx, path)
		return BatchResult{Route: route, Err: err}
	}
}

func routeKey(path []datastructure.Segment) string {
	var sb strings.Builder
	for i, s := range path {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(datastructure.FormatSegment(s))
	}
	return sb.String()
}
