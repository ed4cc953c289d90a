package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"ride-estimates/internal/domain/route"
	"ride-estimates/internal/general/config"
	"ride-estimates/internal/general/logger"
	"ride-estimates/internal/ports"
)

// geocodeResponse is the provider's wire shape. Only the fields the resolver
// needs are decoded.
type geocodeResponse struct {
	Results []struct {
		FormattedAddress string   `json:"formatted_address"`
		Types            []string `json:"types"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	Status string `json:"status"`
}

// Client calls the external geocoding provider over HTTP.
type Client struct {
	baseURL     string
	apiKey      string
	rejectTypes map[string]struct{}
	http        *http.Client
	log         *logger.Logger
}

// NewClient builds a geocoding client from config. The reject list holds the
// provider result-type classifications that disqualify a best match as a
// route endpoint (by default "subpremise": apartment/suite-level hits are too
// specific to trust).
func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	reject := make(map[string]struct{}, len(cfg.Geocoding.RejectTypes))
	for _, t := range cfg.Geocoding.RejectTypes {
		reject[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}

	return &Client{
		baseURL:     strings.TrimRight(cfg.Geocoding.BaseURL, "/"),
		apiKey:      cfg.Geocoding.APIKey,
		rejectTypes: reject,
		http:        &http.Client{Timeout: cfg.GeocodingTimeout()},
		log:         log,
	}
}

// Forward resolves a free-text address to coordinates via forward geocoding.
func (c *Client) Forward(ctx context.Context, address string) (route.Coordinates, error) {
	params := url.Values{}
	params.Set("address", address)
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	resp, err := c.call(ctx, params)
	if err != nil {
		return route.Coordinates{}, err
	}

	if len(resp.Results) == 0 {
		c.log.Debug(ctx, "geocode_no_candidates", "Forward geocoding returned no candidates",
			map[string]any{"address": address})
		return route.Coordinates{}, fmt.Errorf("%w: no candidates for %q", route.ErrGeocode, address)
	}

	best := resp.Results[0]
	for _, t := range best.Types {
		if _, bad := c.rejectTypes[strings.ToLower(t)]; bad {
			c.log.Debug(ctx, "geocode_rejected_type", "Best candidate classified as untrustworthy",
				map[string]any{"address": address, "type": t})
			return route.Coordinates{}, fmt.Errorf("%w: rejected result type %q for %q", route.ErrGeocode, t, address)
		}
	}

	return route.CoordinatesFromFloats(best.Geometry.Location.Lat, best.Geometry.Location.Lng), nil
}

// Reverse resolves a coordinate pair to a formatted address.
func (c *Client) Reverse(ctx context.Context, coords route.Coordinates) (string, error) {
	if err := coords.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", route.ErrGeocode, err)
	}

	params := url.Values{}
	params.Set("latlng", strings.TrimSpace(coords.Latitude)+","+strings.TrimSpace(coords.Longitude))
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	resp, err := c.call(ctx, params)
	if err != nil {
		return "", err
	}

	if len(resp.Results) == 0 || strings.TrimSpace(resp.Results[0].FormattedAddress) == "" {
		return "", fmt.Errorf("%w: no address for %s,%s", route.ErrGeocode, coords.Latitude, coords.Longitude)
	}

	return resp.Results[0].FormattedAddress, nil
}

// call issues one GET against the provider's json endpoint and decodes the
// shared response shape.
func (c *Client) call(ctx context.Context, params url.Values) (*geocodeResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/json?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", route.ErrGeocode, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", route.ErrGeocode, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", route.ErrGeocode, resp.StatusCode)
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", route.ErrGeocode, err)
	}

	// providers report logical failures in-band with a 200
	if decoded.Status != "" && decoded.Status != "OK" && decoded.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("%w: provider status %s", route.ErrGeocode, decoded.Status)
	}

	return &decoded, nil
}

var _ ports.Geocoder = (*Client)(nil)
