// Package service implements the route producer: it reads a JSON file of
// origin/destination pairs, assigns each a fresh uuid, and publishes one
// queue message per route.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"ride-estimates/internal/domain/route"
	"ride-estimates/internal/general/contracts"
	"ride-estimates/internal/general/logger"
	"ride-estimates/internal/ports"

	"github.com/google/uuid"
)

type producerService struct {
	logger    *logger.Logger
	publisher ports.Publisher
}

// NewProducerService wires the producer's collaborators.
func NewProducerService(log *logger.Logger, publisher ports.Publisher) ports.ProducerService {
	return &producerService{logger: log, publisher: publisher}
}

// routePair is the input file's element shape: locations only, no uuid —
// request ids are assigned here, at enqueue time.
type routePair struct {
	Origin      route.Location `json:"origin"`
	Destination route.Location `json:"destination"`
}

// PushRoutes reads a JSON array of route pairs from path and publishes each
// as one RouteRequest with a freshly generated uuid. A route that fails to
// publish aborts the run; everything already published stays published.
func (service *producerService) PushRoutes(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read routes file: %w", err)
	}

	var pairs []routePair
	if err := json.Unmarshal(data, &pairs); err != nil {
		return 0, fmt.Errorf("parse routes file: %w", err)
	}

	published := 0
	for i, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return published, err
		}

		request := contracts.RouteRequest{
			Origin:      pair.Origin,
			Destination: pair.Destination,
			UUID:        uuid.NewString(),
			Envelope: contracts.Envelope{
				Producer: "route-producer",
				SentAt:   time.Now().UTC(),
			},
		}
		if err := request.Validate(); err != nil {
			return published, fmt.Errorf("route %d: %w", i, err)
		}

		body, err := json.Marshal(request)
		if err != nil {
			return published, fmt.Errorf("route %d: marshal: %w", i, err)
		}

		if err := service.publisher.Publish(contracts.ExchangeRouteTopic, contracts.RouteKeyEstimate, body); err != nil {
			return published, fmt.Errorf("route %d: publish: %w", i, err)
		}
		published++

		service.logger.Info(service.logger.WithRequestID(ctx, request.UUID),
			"route_published", "Route request published", map[string]any{
				"origin":      pair.Origin,
				"destination": pair.Destination,
			})
	}

	return published, nil
}
