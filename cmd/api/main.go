package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gaia-qao/compliance-backend/internal/api/rest"
	domain "github.com/gaia-qao/compliance-backend/internal/domain/compliance"
	"github.com/gaia-qao/compliance-backend/internal/domain/session"
	"github.com/gaia-qao/compliance-backend/internal/infrastructure/config"
	"github.com/gaia-qao/compliance-backend/internal/infrastructure/eventlog"
	"github.com/gaia-qao/compliance-backend/internal/infrastructure/telemetry"
	"github.com/gaia-qao/compliance-backend/internal/service/analysis"
	compliancesvc "github.com/gaia-qao/compliance-backend/internal/service/compliance"
	"github.com/gaia-qao/compliance-backend/internal/service/monitor"
	"github.com/gaia-qao/compliance-backend/internal/service/routing"
)

func main() {
	cfg, err := config.Load(os.Getenv("GQAO_CONFIG_FILE"))
	if err != nil {
		zap.NewExample().Fatal("failed to load config", zap.Error(err))
	}

	logger, err := telemetry.NewLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		zap.NewExample().Fatal("failed to build logger", zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events, cleanup := newEventRepository(cfg, logger)
	defer cleanup()

	complianceService := compliancesvc.NewService(logger, events, cfg.Compliance)
	complianceService.SetHooks(compliancesvc.Hooks{
		ReportGenerated: func(report *domain.Report, elapsed time.Duration) {
			reportGenerationDuration.Observe(elapsed.Seconds())
			for _, violation := range report.Violations {
				violationsDetected.WithLabelValues(string(violation.Severity)).Inc()
			}
		},
		AlertsRaised: func(alerts []domain.Alert) {
			for _, alert := range alerts {
				alertsRaised.WithLabelValues(string(alert.Severity)).Inc()
			}
		},
	})

	monitorService := monitor.New(logger, complianceService)
	defer monitorService.StopAll()
	if err := monitorService.SetThresholds(cfg.Monitor.Thresholds); err != nil {
		return err
	}

	handler := rest.NewHandler(
		logger,
		events,
		complianceService,
		monitorService,
		analysis.NewService(logger, events),
		routing.NewService(logger, events),
		cfg.Monitor.Interval,
	)

	server := rest.NewServer(cfg, logger, handler, map[string]http.Handler{
		"GET /metrics": promhttp.Handler(),
	}, instrumentHTTP)

	logger.Info("starting compliance backend",
		zap.String("version", cfg.Version),
		zap.String("environment", cfg.Environment),
		zap.Bool("redis_eventlog", cfg.Redis.Enabled))

	return server.Run(ctx)
}

func newEventRepository(cfg *config.Config, logger *zap.Logger) (session.Repository, func()) {
	if !cfg.Redis.Enabled {
		return eventlog.NewMemoryRepository(), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	logger.Info("using redis event log", zap.String("addr", cfg.Redis.Addr))
	return eventlog.NewRedisRepository(client), func() { _ = client.Close() }
}
