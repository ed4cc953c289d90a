package service

import (
	"context"

	"ride-estimates/internal/general/contracts"
	"ride-estimates/internal/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartBackgroundConsumer attaches the worker to the route request queue.
// Every delivery runs the pipeline; the outcome (success or failure) is
// recorded by Process itself, so the handler always acks — a bad message
// must never crash or block the worker, and per-request failures are
// isolated in their sink records.
func (service *workerService) StartBackgroundConsumer(ctx context.Context, consumer ports.QueueConsumer, prefetch, maxConcurrent int) {
	go func() {
		err := consumer.Consume(ctx, contracts.QueueRouteRequests, "estimate-worker", prefetch, maxConcurrent,
			func(ctx context.Context, d amqp.Delivery) error {
				service.logger.Info(ctx, "message_received", "Route request message received",
					map[string]any{"routing_key": d.RoutingKey, "size": len(d.Body)})

				service.Process(ctx, d.Body)
				return nil
			})
		if err != nil && ctx.Err() == nil {
			service.logger.Error(ctx, "mq_consumer_stopped", "Route request consumer stopped unexpectedly", err,
				map[string]any{"queue": contracts.QueueRouteRequests})
		}
	}()

	service.logger.Info(ctx, "mq_consumer_started", "Estimate worker MQ consumer started",
		map[string]any{"queue": contracts.QueueRouteRequests, "prefetch": prefetch, "max_concurrent": maxConcurrent})
}
