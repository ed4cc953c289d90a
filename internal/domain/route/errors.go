package route

import "errors"

var (
	ErrMalformedRequest   = errors.New("malformed route request")
	ErrGeocode            = errors.New("geocoding failed")
	ErrEstimateProvider   = errors.New("estimate provider failed")
	ErrSinkWrite          = errors.New("sink append failed")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrEmptyAddress       = errors.New("address cannot be empty")
	ErrUnsetLocation      = errors.New("location must be an address string or a coordinates object")
)

// UnknownRequestID is recorded on failure outcomes whose inbound message was
// too broken to recover the caller-assigned uuid from.
const UnknownRequestID = "unknown"
