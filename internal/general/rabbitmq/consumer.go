package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// handlerTimeout bounds one message's entire pipeline; a request that hangs
// on a provider call is failed instead of wedging a worker slot forever.
const handlerTimeout = 30 * time.Second

// newConsumerChannel returns a fresh channel with prefetch (QoS) applied.
func (client *Client) newConsumerChannel(prefetch int) (*amqp.Channel, error) {
	client.mu.RLock()
	conn := client.conn
	client.mu.RUnlock()

	// quick fail if no connection
	if conn == nil || conn.IsClosed() {
		return nil, errors.New("rabbitmq: connection is not ready")
	}

	// open a new channel
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: open channel: %w", err)
	}

	// set prefetch if requested
	if prefetch < 0 {
		prefetch = 1
	}
	if prefetch > 0 {
		if err := ch.Qos(prefetch, 0, false); err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("rabbitmq: set QoS (prefetch=%d): %w", prefetch, err)
		}
	}

	return ch, nil
}

// Consume starts consuming messages from a queue with manual acks.
//
// Each delivery is handled in its own goroutine so a slow request cannot
// block the receive loop; maxConcurrent bounds how many handlers run at
// once. A handler error nacks the delivery without requeue (poison message).
func (client *Client) Consume(
	ctx context.Context,
	queue string,
	consumerTag string,
	prefetch int,
	maxConcurrent int,
	handler func(context.Context, amqp.Delivery) error,
) error {
	// open a fresh channel for this consumer, apply QoS if prefetch > 0
	ch, err := client.newConsumerChannel(prefetch)
	if err != nil {
		return err
	}
	defer ch.Close()

	deliveries, err := ch.Consume(
		queue,
		consumerTag,
		false, // autoAck
		false, // exclusive
		false, // noLocal (ignored by RabbitMQ)
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("rabbitmq: consume(%s): %w", queue, err)
	}

	chClosed := ch.NotifyClose(make(chan *amqp.Error, 1))

	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	sem := make(chan struct{}, maxConcurrent)
	var inflight sync.WaitGroup

	// wait for in-flight handlers on every exit path
	defer inflight.Wait()

	for {
		select {
		case <-ctx.Done():
			if consumerTag != "" {
				_ = ch.Cancel(consumerTag, false)
			}
			return nil

		case cerr := <-chClosed:
			if cerr != nil {
				return fmt.Errorf("rabbitmq: channel closed while consuming %s: %w", queue, cerr)
			}
			return nil

		case d, ok := <-deliveries:
			if !ok {
				// deliveries stream ended
				return nil
			}

			// acquire a worker slot, then hand the delivery off
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				_ = d.Nack(false, true) // requeue: we never started this one
				continue
			}

			inflight.Add(1)
			go func(d amqp.Delivery) {
				defer inflight.Done()
				defer func() { <-sem }()

				hCtx, cancel := context.WithTimeout(ctx, handlerTimeout)
				err := handler(hCtx, d)
				cancel()

				if err != nil {
					_ = d.Nack(false, false) // drop poison message
					return
				}
				_ = d.Ack(false)
			}(d)
		}
	}
}
