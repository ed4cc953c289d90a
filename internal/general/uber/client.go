package uber

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

// Per-product wire fields the client interprets; all other provider fields
// are passed through untouched.
const (
	fieldDisplayName = "localized_display_name"
	fieldDuration    = "duration" // price records: trip duration in seconds
	fieldEstimate    = "estimate" // time records: pickup ETA in seconds

	// locally derived duration strings, attached next to the numeric source
	fieldParsedArrivalTime = "parsedArrivalTime"
	fieldParsedDuration    = "parsedDuration"
)

// Client calls the ride-estimate provider's time and price endpoints.
type Client struct {
	baseURL     string
	serverToken string
	http        *http.Client
	log         *logger.Logger
}

// NewClient builds an estimate client from config.
func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.Estimates.BaseURL, "/"),
		serverToken: cfg.Estimates.ServerToken,
		http:        &http.Client{Timeout: cfg.EstimatesTimeout()},
		log:         log,
	}
}

// Fetch issues the time and price requests concurrently and returns both
// lists. The pair succeeds only if both calls succeed; the first failure
// fails the whole fetch with route.ErrEstimateProvider naming the side.
func (c *Client) Fetch(ctx context.Context, start, end route.Coordinates) (*route.EstimateSet, error) {
	var (
		prices, times []route.RawEstimate
		priceErr      = make(chan error, 1)
		timeErr       = make(chan error, 1)
	)

	go func() {
		list, err := c.fetchList(ctx, c.priceURL(start, end), "prices", fieldDuration, fieldParsedArrivalTime)
		prices = list
		priceErr <- err
	}()
	go func() {
		list, err := c.fetchList(ctx, c.timeURL(start), "times", fieldEstimate, fieldParsedDuration)
		times = list
		timeErr <- err
	}()

	if err := <-priceErr; err != nil {
		<-timeErr // drain so the goroutine can exit
		return nil, fmt.Errorf("%w: price estimate: %v", route.ErrEstimateProvider, err)
	}
	if err := <-timeErr; err != nil {
		return nil, fmt.Errorf("%w: time estimate: %v", route.ErrEstimateProvider, err)
	}

	return &route.EstimateSet{Prices: prices, Times: times}, nil
}

// timeURL needs only the start point.
func (c *Client) timeURL(start route.Coordinates) string {
	params := url.Values{}
	params.Set("server_token", c.serverToken)
	params.Set("start_latitude", start.Latitude)
	params.Set("start_longitude", start.Longitude)
	return c.baseURL + "/time?" + params.Encode()
}

// priceURL needs both endpoints of the route.
func (c *Client) priceURL(start, end route.Coordinates) string {
	params := url.Values{}
	params.Set("server_token", c.serverToken)
	params.Set("start_latitude", start.Latitude)
	params.Set("start_longitude", start.Longitude)
	params.Set("end_latitude", end.Latitude)
	params.Set("end_longitude", end.Longitude)
	return c.baseURL + "/price?" + params.Encode()
}

// fetchList GETs one endpoint, decodes the named per-product list, and
// attaches the human-readable duration string derived from secondsField to
// each record under parsedField. The numeric source field is not mutated.
func (c *Client) fetchList(ctx context.Context, u, listKey, secondsField, parsedField string) ([]route.RawEstimate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d from %s endpoint", resp.StatusCode, listKey)
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode %s response: %v", listKey, err)
	}

	rawList, ok := body[listKey]
	if !ok {
		return nil, fmt.Errorf("response is missing the %q list", listKey)
	}

	var items []map[string]any
	if err := json.Unmarshal(rawList, &items); err != nil {
		return nil, fmt.Errorf("decode %q list: %v", listKey, err)
	}

	estimates := make([]route.RawEstimate, 0, len(items))
	for _, fields := range items {
		name, _ := fields[fieldDisplayName].(string)
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%s record is missing %s", listKey, fieldDisplayName)
		}

		if seconds, ok := fields[secondsField].(float64); ok && seconds >= 0 {
			fields[parsedField] = route.FormatDuration(int(seconds))
		}

		estimates = append(estimates, route.RawEstimate{DisplayName: name, Fields: fields})
	}

	return estimates, nil
}

var _ ports.EstimateClient = (*Client)(nil)
