package contracts

import (
	"strings"

	"ride-estimates/internal/domain/route"
)

// RouteRequest is the queue message asking the worker for ride estimates
// between two locations. Each side is either a free-text address string or a
// {"latitude","longitude"} object of decimal strings.
// Routing key: "route.request.{source}" on ExchangeRouteTopic.
type RouteRequest struct {
	Origin      route.Location `json:"origin"`
	Destination route.Location `json:"destination"`
	UUID        string         `json:"uuid"` // caller-assigned request id
	Envelope
}

// Validate checks both sides and the request id.
func (r *RouteRequest) Validate() error {
	if err := r.Origin.Validate(); err != nil {
		return err
	}
	if err := r.Destination.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.UUID) == "" {
		return route.ErrMalformedRequest
	}
	return nil
}
