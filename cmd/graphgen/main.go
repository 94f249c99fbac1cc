package main

import (
	"flag"

	"github.com/lintang-b-s/navigatorx-leaps/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/logger"
	"go.uber.org/zap"
)

var (
	rows     = flag.Int("rows", 50, "number of east-west roads")
	cols     = flag.Int("cols", 50, "number of north-south roads")
	seed     = flag.Int64("seed", 42, "random seed for eta jitter and traffic lights")
	outFile  = flag.String("out", "./data/segments.graph", "output segment graph file")
	cellSize = flag.Float64("cell_km", 0.2, "distance between parallel roads in km")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	params := datastructure.DefaultGridGraphParams(*rows, *cols)
	params.Seed = *seed
	params.CellSizeKm = *cellSize

	graph := datastructure.BuildGridGraph(params)
	if err := graph.WriteGraph(*outFile); err != nil {
		logger.Fatal("failed to write segment graph", zap.Error(err))
	}
	logger.Info("segment graph written", zap.String("out", *outFile),
		zap.Int("segments", graph.NumberOfSegments()), zap.Int("edges", graph.NumberOfEdges()),
		zap.Int("largestComponent", graph.LargestComponentSize()))
}
