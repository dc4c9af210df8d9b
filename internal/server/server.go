package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	appscores "nba-scoreboard-service/internal/app/scores"
	appstandings "nba-scoreboard-service/internal/app/standings"
	"nba-scoreboard-service/internal/cache"
	"nba-scoreboard-service/internal/config"
	"nba-scoreboard-service/internal/domain/games"
	domainstandings "nba-scoreboard-service/internal/domain/standings"
	httpserver "nba-scoreboard-service/internal/http"
	"nba-scoreboard-service/internal/http/handlers"
	"nba-scoreboard-service/internal/metrics"
	"nba-scoreboard-service/internal/pipeline"
	"nba-scoreboard-service/internal/prefetch"
	"nba-scoreboard-service/internal/providers"
	"nba-scoreboard-service/internal/ratelimit"
	"nba-scoreboard-service/internal/timeutil"
	"nba-scoreboard-service/internal/window"
)

var metricsSetup = metrics.Setup

// Server owns the sync core's lifecycle: one rate limit monitor, the caches,
// both app services, the prefetch scheduler, and the HTTP surfaces.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	monitor       *ratelimit.Monitor
	scoresSvc     *appscores.Service
	standingsSvc  *appstandings.Service
	httpServer    httpServer
	metricsServer httpServer
	prefetcher    *prefetch.Scheduler
	metricsStop   func(context.Context) error
}

// New constructs a server with default provider wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithProvider(cfg, logger, buildProvider(cfg, logger))
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.DataProvider) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger)

	// One monitor guards every outbound call; the pipeline owns the
	// retry/backoff policy around it (no ambient global state).
	monitor := ratelimit.NewMonitor(ratelimit.Config{
		MaxRequests: cfg.RateLimit.MaxRequests,
		Window:      cfg.RateLimit.Window,
		BaseDelay:   cfg.RateLimit.BaseDelay,
		MaxRetries:  cfg.RateLimit.MaxRetries,
	})
	pl := pipeline.New(monitor, logger, recorder)

	loc := timeutil.ResolveLocation(cfg.Timezone)
	if loc == nil {
		loc = time.UTC
		if logger != nil {
			logger.Warn("invalid viewer timezone, using UTC", slog.String("tz", cfg.Timezone))
		}
	}
	windows := window.NewStrategy(cfg.Window.DaysBefore, cfg.Window.DaysAfter, loc)

	scoreCache := cache.New[[]games.Game](cfg.Cache.ScoresFreshFor, logger, recorder)
	standingsCache := cache.New[domainstandings.Standings](cfg.Cache.StandingsFreshFor, logger, recorder)

	scoresSvc := appscores.NewService(provider, provider, pl, scoreCache, windows, logger)
	standingsSvc := appstandings.NewService(provider, pl, standingsCache, cfg.ESPN.Groups, logger)

	prefetcher := prefetch.New(scoresSvc, standingsSvc, logger, recorder,
		cfg.Prefetch.ScoresInterval, cfg.Prefetch.StandingsInterval)

	handler := handlers.NewHandler(scoresSvc, standingsSvc, monitor, logger, prefetcher.Status)
	router := httpserver.NewRouter(handler, logger, recorder, cfg.AllowedOrigins)

	httpSrv := netHTTPServer{srv: &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		monitor:       monitor,
		scoresSvc:     scoresSvc,
		standingsSvc:  standingsSvc,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		prefetcher:    prefetcher,
		metricsStop:   metricsShutdown,
	}
}

// Run starts the prefetch scheduler and HTTP server, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.prefetcher.Start(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.prefetcher.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop prefetch scheduler", "error", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
