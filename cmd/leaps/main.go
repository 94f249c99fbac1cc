package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/lintang-b-s/navigatorx-leaps/pkg"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/concurrent"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/engine"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/engine/leaps"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	graphFile  = flag.String("graph", "./data/segments.graph", "bzip2 segment graph file")
	routesFile = flag.String("routes", "./data/routes.txt", "input routes, one route per line")
	outFile    = flag.String("out", "./data/routes_leaps.txt", "refined routes output file")
	maxStep    = flag.Int("max_step", pkg.LEAPS_MAX_STEP, "max number of segments of a replacement path")
	weightEps  = flag.Float64("eps", pkg.LEAPS_WEIGHT_EPS, "min seconds a replacement must save")
	workers    = flag.Int("workers", runtime.NumCPU(), "number of workers")
)

type routeResult struct {
	path  []datastructure.Segment
	stats leaps.Stats
	err   error
}

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(context.Background(), logger); err != nil {
		logger.Fatal("leaps post-processing failed", zap.Error(err))
	}
}

func run(ctx context.Context, logger *zap.Logger) error {
	var (
		leapsEngine *engine.Engine
		routes      [][]datastructure.Segment
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		leapsEngine, err = engine.NewEngine(*graphFile, logger, *maxStep, *weightEps)
		return err
	})
	g.Go(func() error {
		f, err := os.Open(*routesFile)
		if err != nil {
			return fmt.Errorf("open routes file %s: %w", *routesFile, err)
		}
		defer f.Close()
		routes, err = datastructure.ReadRoutes(f)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("routes loaded", zap.Int("routes", len(routes)))

	results, err := concurrent.Map(ctx, *workers, routes, func(route []datastructure.Segment) routeResult {
		if err := leapsEngine.ValidatePath(route); err != nil {
			return routeResult{path: route, err: err}
		}
		processed, stats := leapsEngine.Process(route)
		return routeResult{path: processed, stats: stats}
	})
	if err != nil {
		return err
	}

	refined := make([][]datastructure.Segment, len(results))
	var (
		invalid, improved int
		etaSaved          float64
	)
	for i, res := range results {
		refined[i] = res.path
		if res.err != nil {
			invalid++
			logger.Warn("route kept as is", zap.Int("route", i), zap.Error(res.err))
			continue
		}
		if res.stats.Accepted > 0 {
			improved++
		}
		etaSaved += res.stats.WeightSaved()
	}

	if err := writeRoutes(*outFile, refined); err != nil {
		return err
	}

	logger.Info("leaps post-processing done", zap.Int("routes", len(routes)), zap.Int("invalid", invalid),
		zap.Int("improved", improved), zap.Float64("etaSavedSeconds", etaSaved), zap.String("out", *outFile))
	return nil
}

func writeRoutes(filename string, routes [][]datastructure.Segment) (err error) {
	out, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create output file %s: %w", filename, err)
	}
	defer func() {
		if cErr := out.Close(); cErr != nil && err == nil {
			err = fmt.Errorf("close output file %s: %w", filename, cErr)
		}
	}()

	w := bufio.NewWriter(out)
	if err := datastructure.WriteRoutes(w, routes); err != nil {
		return err
	}
	return w.Flush()
}
