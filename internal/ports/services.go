package ports

import (
	"context"

	"ride-estimates/internal/domain/route"

	amqp "github.com/rabbitmq/amqp091-go"
)

// QueueConsumer consumes queue deliveries with manual acks. maxConcurrent
// bounds how many deliveries are in flight at once; each delivery's handler
// runs as its own task so one slow request never blocks the receive loop.
type QueueConsumer interface {
	Consume(ctx context.Context, queue, consumerTag string, prefetch, maxConcurrent int, handler func(context.Context, amqp.Delivery) error) error
}

// WorkerService exposes the boundary of the estimate worker.
type WorkerService interface {
	// Process runs the full pipeline for one raw queue message and returns
	// the outcome record. It never returns an error: every failure mode is
	// folded into a failure Result.
	Process(ctx context.Context, body []byte) *route.Result

	// StartBackgroundConsumer attaches the worker to the route request queue.
	StartBackgroundConsumer(ctx context.Context, consumer QueueConsumer, prefetch, maxConcurrent int)
}

// ProducerService exposes the boundary of the route producer.
type ProducerService interface {
	// PushRoutes reads a JSON array of route pairs from path, assigns each a
	// fresh uuid, and publishes one queue message per route. It returns the
	// number of routes published.
	PushRoutes(ctx context.Context, path string) (int, error)
}
