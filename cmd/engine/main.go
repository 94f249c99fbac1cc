package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/lintang-b-s/navigatorx-leaps/pkg"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/engine"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/http"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/http/usecases"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/logger"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/metrics"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	graphFile    = flag.String("graph", "./data/segments.graph", "bzip2 segment graph file")
	useRateLimit = flag.Bool("rate_limit", false, "limit requests per second (RATE_LIMIT_RPS)")
	workers      = flag.Int("workers", runtime.NumCPU(), "number of workers for batch requests")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	viper.SetDefault("LEAPS_MAX_STEP", pkg.LEAPS_MAX_STEP)
	viper.SetDefault("LEAPS_WEIGHT_EPS", pkg.LEAPS_WEIGHT_EPS)
	viper.SetDefault("LEAPS_CACHE_SIZE", 4096)

	leapsEngine, err := engine.NewEngine(*graphFile, logger, viper.GetInt("LEAPS_MAX_STEP"),
		viper.GetFloat64("LEAPS_WEIGHT_EPS"))
	if err != nil {
		logger.Fatal("failed to load segment graph", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	leapsService, err := usecases.NewLeapsService(logger, leapsEngine, metrics.NewLeapsMetrics(reg),
		viper.GetInt("LEAPS_CACHE_SIZE"), *workers)
	if err != nil {
		logger.Fatal("failed to create leaps service", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := http.NewServer(logger)
	err = api.Use(ctx, logger, *useRateLimit, leapsService, reg)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Navigatorx Leaps Server Stopped", zap.Error(err))
		return
	}
	logger.Info("Navigatorx Leaps Server Stopped")
}
