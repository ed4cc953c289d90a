package service

import (
	"context"
	"fmt"

	"ride-estimates/internal/domain/route"
)

// resolvedPair carries one side's resolution outcome across the join.
type resolvedPair struct {
	loc *route.ResolvedLocation
	err error
}

// resolveRoute normalizes both ends of the route concurrently. Either side
// failing fails the whole resolution; on success both sides carry an
// address and coordinates.
func (service *workerService) resolveRoute(ctx context.Context, origin, destination route.Location) (start, finish *route.ResolvedLocation, err error) {
	originCh := make(chan resolvedPair, 1)
	destCh := make(chan resolvedPair, 1)

	go func() {
		loc, err := service.resolve(ctx, origin)
		originCh <- resolvedPair{loc: loc, err: err}
	}()
	go func() {
		loc, err := service.resolve(ctx, destination)
		destCh <- resolvedPair{loc: loc, err: err}
	}()

	from := <-originCh
	to := <-destCh

	if from.err != nil {
		return nil, nil, fmt.Errorf("origin: %w", from.err)
	}
	if to.err != nil {
		return nil, nil, fmt.Errorf("destination: %w", to.err)
	}

	return from.loc, to.loc, nil
}

// resolve normalizes a single location into both representations.
//
// The address branch keeps the caller's original address text rather than
// the provider's normalized form; the coordinates branch keeps the caller's
// original pair. Resolution is atomic: any provider failure leaves nothing
// partially populated.
func (service *workerService) resolve(ctx context.Context, loc route.Location) (*route.ResolvedLocation, error) {
	switch loc.Kind {
	case route.LocationAddress:
		coords, err := service.geocoder.Forward(ctx, loc.Address)
		if err != nil {
			return nil, err
		}
		return &route.ResolvedLocation{Address: loc.Address, Coordinates: coords}, nil

	case route.LocationCoordinates:
		address, err := service.geocoder.Reverse(ctx, loc.Coordinates)
		if err != nil {
			return nil, err
		}
		return &route.ResolvedLocation{Address: address, Coordinates: loc.Coordinates}, nil

	default:
		return nil, route.ErrUnsetLocation
	}
}
