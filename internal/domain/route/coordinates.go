package route

import (
	"strconv"
	"strings"
)

// Coordinates is a latitude/longitude pair kept as decimal strings.
// The estimate provider is sensitive to precision, so values are passed
// through verbatim and only validated, never reformatted.
type Coordinates struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// Empty reports whether neither field is set.
func (c Coordinates) Empty() bool {
	return strings.TrimSpace(c.Latitude) == "" && strings.TrimSpace(c.Longitude) == ""
}

// Validate checks that both fields are present and are decimal numbers in range.
func (c Coordinates) Validate() error {
	lat := strings.TrimSpace(c.Latitude)
	lng := strings.TrimSpace(c.Longitude)
	if lat == "" || lng == "" {
		return ErrInvalidCoordinates
	}

	latF, err := strconv.ParseFloat(lat, 64)
	if err != nil || latF < -90 || latF > 90 {
		return ErrInvalidCoordinates
	}
	lngF, err := strconv.ParseFloat(lng, 64)
	if err != nil || lngF < -180 || lngF > 180 {
		return ErrInvalidCoordinates
	}

	return nil
}

// Floats returns the numeric form of the pair. Validate must have passed.
func (c Coordinates) Floats() (lat, lng float64) {
	lat, _ = strconv.ParseFloat(strings.TrimSpace(c.Latitude), 64)
	lng, _ = strconv.ParseFloat(strings.TrimSpace(c.Longitude), 64)
	return lat, lng
}

// CoordinatesFromFloats builds a Coordinates value from numeric lat/lng,
// using the shortest decimal representation that round-trips.
func CoordinatesFromFloats(lat, lng float64) Coordinates {
	return Coordinates{
		Latitude:  strconv.FormatFloat(lat, 'f', -1, 64),
		Longitude: strconv.FormatFloat(lng, 'f', -1, 64),
	}
}
