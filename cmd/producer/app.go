package producer

import (
	"context"

	"ride-estimates/internal/general/config"
	"ride-estimates/internal/general/logger"
	"ride-estimates/internal/general/rabbitmq"
	"ride-estimates/internal/software/producer/service"
)

// Run wires the route producer, publishes every route in the input file,
// and exits.
func Run(ctx context.Context, configPath, inputPath string) error {
	// set up a new logger with a static request ID for startup logs
	logger := logger.New("route-producer")
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

	// publish every route in the input file
	svc := service.NewProducerService(logger, rabbitmq.NewMQPublisher(rmq))
	count, err := svc.PushRoutes(ctx, inputPath)
	if err != nil {
		logger.Error(ctx, "push_routes_failed", "Failed to publish route requests", err,
			map[string]any{"input": inputPath, "published": count})
		return err
	}

	logger.Info(ctx, "push_routes_done", "All route requests published", map[string]any{
		"input":     inputPath,
		"published": count,
	})

	return nil
}
