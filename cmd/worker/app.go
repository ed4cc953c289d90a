package worker

import (
	"context"

	"ride-estimates/internal/general/config"
	"ride-estimates/internal/general/geocode"
	"ride-estimates/internal/general/logger"
	"ride-estimates/internal/general/postgres"
	"ride-estimates/internal/general/rabbitmq"
	"ride-estimates/internal/general/rediscache"
	"ride-estimates/internal/general/sink"
	"ride-estimates/internal/general/uber"
	"ride-estimates/internal/ports"
	"ride-estimates/internal/software/worker/service"
)

// Run wires the estimate worker and blocks until ctx is cancelled.
func Run(ctx context.Context, configPath string, prefetch, maxConcurrent int) error {
	// set up a new logger with a static request ID for startup logs
	logger := logger.New("estimate-worker")
	ctx = logger.WithRequestID(ctx, "startup-001")

	// load a config from file
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		logger.Error(ctx, "config_load_failed", "Failed to load configuration", err, nil)
		return err
	}

	// connect to RabbitMQ
	rmq, err := rabbitmq.ConnectRabbitMQ(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "rabbitmq_connection_failed", "Failed to connect to RabbitMQ", err, nil)
		return err
	}
	defer rmq.Close()

	// set up the geocoder, optionally wrapped with the Redis cache
	var geocoder ports.Geocoder = geocode.NewClient(cfg, logger)
	if cfg.Redis.Enabled {
		cache, err := rediscache.Connect(ctx, cfg, logger)
		if err != nil {
			logger.Error(ctx, "redis_connection_failed", "Failed to connect to Redis", err, nil)
			return err
		}
		defer cache.Close()
		geocoder = geocode.NewCached(geocoder, cache, cfg.CacheTTL(), logger)
	}

	// set up the outcome sink per the configured driver
	var outcomeSink ports.Sink
	switch cfg.Sink.Driver {
	case config.SinkDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg, logger)
		if err != nil {
			logger.Error(ctx, "db_connection_failed", "Failed to initialize Postgres pool", err, nil)
			return err
		}
		defer pool.Close()
		outcomeSink = postgres.NewArchiveSink(pool)
	default:
		fileSink, err := sink.NewFileSink(cfg.Sink.Path)
		if err != nil {
			logger.Error(ctx, "sink_open_failed", "Failed to open sink file", err,
				map[string]any{"path": cfg.Sink.Path})
			return err
		}
		defer fileSink.Close()
		outcomeSink = fileSink
	}

	// set up the worker service and start consuming
	svc := service.NewWorkerService(logger, geocoder, uber.NewClient(cfg, logger), outcomeSink)
	svc.StartBackgroundConsumer(ctx, rmq, prefetch, maxConcurrent)

	logger.Info(ctx, "service_started", "Estimate worker started", map[string]any{
		"prefetch":       prefetch,
		"max_concurrent": maxConcurrent,
		"sink_driver":    cfg.Sink.Driver,
	})

	// block until shutdown
	<-ctx.Done()
	logger.Info(ctx, "shutdown", "Estimate worker shutting down", nil)

	return nil
}
