package contracts

import (
	"encoding/json"
	"testing"

	"ride-estimates/internal/domain/route"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteRequestWireShapes(t *testing.T) {
	var request RouteRequest
	err := json.Unmarshal([]byte(`{
		"origin": "1600 Amphitheatre Parkway",
		"destination": {"latitude": "37.331", "longitude": "-122.031"},
		"uuid": "abc",
		"producer": "route-producer",
		"sent_at": "2026-08-29T10:00:00Z"
	}`), &request)

	require.NoError(t, err)
	require.NoError(t, request.Validate())
	assert.Equal(t, route.LocationAddress, request.Origin.Kind)
	assert.Equal(t, route.LocationCoordinates, request.Destination.Kind)
	assert.Equal(t, "abc", request.UUID)
	assert.Equal(t, "route-producer", request.Producer)
}

func TestRouteRequestValidate(t *testing.T) {
	valid := RouteRequest{
		Origin:      route.AddressLocation("A"),
		Destination: route.AddressLocation("B"),
		UUID:        "abc",
	}
	assert.NoError(t, valid.Validate())

	missingUUID := valid
	missingUUID.UUID = "  "
	assert.ErrorIs(t, missingUUID.Validate(), route.ErrMalformedRequest)

	unsetSide := valid
	unsetSide.Destination = route.Location{}
	assert.ErrorIs(t, unsetSide.Validate(), route.ErrUnsetLocation)

	badPair := valid
	badPair.Origin = route.CoordinatesLocation(route.Coordinates{Latitude: "91", Longitude: "0"})
	assert.ErrorIs(t, badPair.Validate(), route.ErrInvalidCoordinates)
}
