package service

import (
	"context"
	"encoding/json"

	"ride-estimates/internal/domain/route"
	"ride-estimates/internal/general/contracts"
)

// Process runs the full pipeline for one raw queue message: parse → resolve
// both endpoints → fetch estimates → merge → success record; any stage
// failure short-circuits to the single all-or-nothing failure record. The
// returned Result has already been appended to the sink (best effort on the
// failure path).
func (service *workerService) Process(ctx context.Context, body []byte) *route.Result {
	request, err := parseRequest(body)
	if err != nil {
		// not retried: a malformed message stays malformed
		uuid := recoverUUID(body)
		service.logger.Error(ctx, "route_parse_failed", "Failed to parse route request", err,
			map[string]any{"uuid": uuid, "body": string(body)})

		res := route.FailureResult(uuid)
		service.emit(ctx, res)
		return res
	}

	ctx = service.logger.WithRequestID(ctx, request.UUID)
	service.logger.Info(ctx, "route_received", "Processing route request", map[string]any{
		"origin":      describeLocation(request.Origin),
		"destination": describeLocation(request.Destination),
	})

	start, finish, err := service.resolveRoute(ctx, request.Origin, request.Destination)
	if err != nil {
		service.logger.Error(ctx, "route_resolution_failed", "Failed to resolve route endpoints", err, nil)

		res := route.FailureResult(request.UUID)
		service.emit(ctx, res)
		return res
	}

	estimates, err := service.estimates.Fetch(ctx, start.Coordinates, finish.Coordinates)
	if err != nil {
		service.logger.Error(ctx, "estimate_fetch_failed", "Failed to fetch ride estimates", err, nil)

		res := route.FailureResult(request.UUID)
		service.emit(ctx, res)
		return res
	}

	res := &route.Result{
		UUID:      request.UUID,
		Start:     start,
		Finish:    finish,
		Estimates: mergeEstimates(estimates.Prices, estimates.Times),
	}
	service.emit(ctx, res)

	return res
}

// emit appends the outcome to the sink. A failed append is the one
// unrecoverable condition: it is reported to the operational log only,
// never retried, never surfaced to the queue.
func (service *workerService) emit(ctx context.Context, res *route.Result) {
	if err := service.sink.Append(ctx, res); err != nil {
		service.logger.Error(ctx, "sink_append_failed", "Could not append outcome record", err,
			map[string]any{"uuid": res.UUID, "failed_outcome": res.Failed()})
		return
	}

	service.logger.Info(ctx, "route_saved", "Outcome record appended", map[string]any{
		"uuid":   res.UUID,
		"failed": res.Failed(),
	})
}

// parseRequest decodes and validates the inbound message.
func parseRequest(body []byte) (*contracts.RouteRequest, error) {
	var request contracts.RouteRequest
	if err := json.Unmarshal(body, &request); err != nil {
		return nil, err
	}
	if err := request.Validate(); err != nil {
		return nil, err
	}
	return &request, nil
}

// recoverUUID makes a best-effort attempt to pull the caller-assigned uuid
// out of a message that failed full parsing, falling back to the "unknown"
// sentinel when even that much is unreadable.
func recoverUUID(body []byte) string {
	var partial struct {
		UUID string `json:"uuid"`
	}
	if err := json.Unmarshal(body, &partial); err != nil || partial.UUID == "" {
		return route.UnknownRequestID
	}
	return partial.UUID
}

// describeLocation renders a location for log lines without dumping raw
// wire payloads.
func describeLocation(loc route.Location) string {
	switch loc.Kind {
	case route.LocationAddress:
		return loc.Address
	case route.LocationCoordinates:
		return loc.Coordinates.Latitude + "," + loc.Coordinates.Longitude
	default:
		return "<unset>"
	}
}
