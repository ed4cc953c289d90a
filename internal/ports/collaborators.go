package ports

import (
	"context"
	"time"

	"ride-estimates/internal/domain/route"
)

// Geocoder converts between the two location representations using the
// external geocoding provider.
type Geocoder interface {
	// Forward resolves a free-text address to coordinates. It fails with
	// route.ErrGeocode when the provider errors, returns no candidate, or the
	// best candidate is classified as an untrustworthy match.
	Forward(ctx context.Context, address string) (route.Coordinates, error)

	// Reverse resolves a coordinate pair to a formatted address.
	Reverse(ctx context.Context, coords route.Coordinates) (string, error)
}

// EstimateClient fetches per-product price and time estimates for a route
// from the external estimate provider. Both endpoint calls run concurrently;
// the first failure fails the whole fetch with route.ErrEstimateProvider.
type EstimateClient interface {
	Fetch(ctx context.Context, start, end route.Coordinates) (*route.EstimateSet, error)
}

// Sink is the append-only destination for outcome records. Appends of
// different requests may race; each append must land as one self-delimited
// record.
type Sink interface {
	Append(ctx context.Context, res *route.Result) error
}

// Publisher sends messages to the queue.
type Publisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// Cache is a TTL'd key/value store for geocode results.
type Cache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string, dest any) error
}
