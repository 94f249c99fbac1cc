package http

import (
	"context"

	http_router "github.com/lintang-b-s/navigatorx-leaps/pkg/http/router"
	"github.com/lintang-b-s/navigatorx-leaps/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/navigatorx-leaps/pkg/http/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use runs the API until ctx is cancelled or the listener fails.
func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,

	useRateLimit bool,
	leapsService controllers.LeapsService,
	gatherer prometheus.Gatherer,
) error {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("HTTP_SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("HTTP_SERVER_WRITE_TIMEOUT", "5s")
	viper.SetDefault("HTTP_SERVER_IDLE_TIMEOUT", "60s")
	viper.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", "5s")
	viper.SetDefault("RATE_LIMIT_RPS", 50)

	config := http_server.Config{
		Port:    viper.GetInt("API_PORT"),
		Timeout: viper.GetDuration("API_TIMEOUT"),
	}
	rateLimit := http_router.RateLimit{
		Enabled: useRateLimit,
		RPS:     viper.GetFloat64("RATE_LIMIT_RPS"),
		Burst:   max(1, viper.GetInt("RATE_LIMIT_RPS")),
	}

	api := http_router.NewAPI(log)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return api.Run(
			gCtx, config, log,
			rateLimit, leapsService, gatherer,
		)
	})

	return g.Wait()
}
