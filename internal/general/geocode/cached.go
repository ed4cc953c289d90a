package geocode

import (
	"context"
	"strings"
	"time"

	"ride-estimates/internal/domain/route"
	"ride-estimates/internal/general/logger"
	"ride-estimates/internal/general/rediscache"
	"ride-estimates/internal/ports"
)

const (
	keyPrefixForward = "geocode:forward"
	keyPrefixReverse = "geocode:reverse"
)

// CachedGeocoder memoizes geocoder answers in Redis. Geocode results for a
// given address or pair are stable enough that repeated routes skip the
// provider entirely; cache failures degrade to a direct provider call.
type CachedGeocoder struct {
	next  ports.Geocoder
	cache ports.Cache
	ttl   time.Duration
	log   *logger.Logger
}

// NewCached wraps a geocoder with a Redis-backed cache.
func NewCached(next ports.Geocoder, cache ports.Cache, ttl time.Duration, log *logger.Logger) *CachedGeocoder {
	return &CachedGeocoder{next: next, cache: cache, ttl: ttl, log: log}
}

// Forward returns the cached coordinates for an address, or asks the
// underlying geocoder and stores the answer.
func (g *CachedGeocoder) Forward(ctx context.Context, address string) (route.Coordinates, error) {
	key := rediscache.GenerateKey(keyPrefixForward, strings.ToLower(strings.TrimSpace(address)))

	var cached route.Coordinates
	if err := g.cache.Get(ctx, key, &cached); err == nil && cached.Validate() == nil {
		g.log.Debug(ctx, "geocode_cache_hit", "Forward geocode served from cache", map[string]any{"key": key})
		return cached, nil
	}

	coords, err := g.next.Forward(ctx, address)
	if err != nil {
		return route.Coordinates{}, err
	}

	if err := g.cache.Set(ctx, key, coords, g.ttl); err != nil {
		g.log.Error(ctx, "geocode_cache_set_failed", "Failed to cache forward geocode result", err,
			map[string]any{"key": key})
	}

	return coords, nil
}

// Reverse returns the cached address for a pair, or asks the underlying
// geocoder and stores the answer.
func (g *CachedGeocoder) Reverse(ctx context.Context, coords route.Coordinates) (string, error) {
	key := rediscache.GenerateKey(keyPrefixReverse, strings.TrimSpace(coords.Latitude)+","+strings.TrimSpace(coords.Longitude))

	var cached string
	if err := g.cache.Get(ctx, key, &cached); err == nil && strings.TrimSpace(cached) != "" {
		g.log.Debug(ctx, "geocode_cache_hit", "Reverse geocode served from cache", map[string]any{"key": key})
		return cached, nil
	}

	address, err := g.next.Reverse(ctx, coords)
	if err != nil {
		return "", err
	}

	if err := g.cache.Set(ctx, key, address, g.ttl); err != nil {
		g.log.Error(ctx, "geocode_cache_set_failed", "Failed to cache reverse geocode result", err,
			map[string]any{"key": key})
	}

	return address, nil
}

var _ ports.Geocoder = (*CachedGeocoder)(nil)
