package route

import (
	"encoding/json"
	"strings"
)

// LocationKind discriminates the two forms a request-side location can take.
type LocationKind int

const (
	LocationUnset LocationKind = iota
	LocationAddress
	LocationCoordinates
)

// Location is a tagged union: a free-text address or a coordinate pair,
// never both. On the wire it is either a JSON string or an object with
// "latitude"/"longitude" fields.
type Location struct {
	Kind        LocationKind
	Address     string
	Coordinates Coordinates
}

// AddressLocation builds the address variant.
func AddressLocation(address string) Location {
	return Location{Kind: LocationAddress, Address: address}
}

// CoordinatesLocation builds the coordinates variant.
func CoordinatesLocation(c Coordinates) Location {
	return Location{Kind: LocationCoordinates, Coordinates: c}
}

// Validate checks the variant that is set.
func (l Location) Validate() error {
	switch l.Kind {
	case LocationAddress:
		if strings.TrimSpace(l.Address) == "" {
			return ErrEmptyAddress
		}
		return nil
	case LocationCoordinates:
		return l.Coordinates.Validate()
	default:
		return ErrUnsetLocation
	}
}

// UnmarshalJSON decides the variant by wire shape: a string is an address,
// an object is a coordinate pair. Anything else is rejected.
func (l *Location) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return ErrUnsetLocation
	}

	if trimmed[0] == '"' {
		var address string
		if err := json.Unmarshal(data, &address); err != nil {
			return err
		}
		if strings.TrimSpace(address) == "" {
			return ErrEmptyAddress
		}
		*l = AddressLocation(address)
		return nil
	}

	if trimmed[0] == '{' {
		var coords Coordinates
		if err := json.Unmarshal(data, &coords); err != nil {
			return err
		}
		if err := coords.Validate(); err != nil {
			return err
		}
		*l = CoordinatesLocation(coords)
		return nil
	}

	return ErrUnsetLocation
}

// MarshalJSON emits the wire form matching the variant.
func (l Location) MarshalJSON() ([]byte, error) {
	switch l.Kind {
	case LocationAddress:
		return json.Marshal(l.Address)
	case LocationCoordinates:
		return json.Marshal(l.Coordinates)
	default:
		return nil, ErrUnsetLocation
	}
}

// ResolvedLocation is a location normalized into both representations.
// Either both fields are populated or resolution failed as a whole.
type ResolvedLocation struct {
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
}
