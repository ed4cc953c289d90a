package uber

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ride-estimates/internal/domain/route"
	"ride-estimates/internal/general/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return &Client{
		baseURL:     baseURL,
		serverToken: "test-token",
		http:        &http.Client{Timeout: 5 * time.Second},
		log:         logger.New("uber-test"),
	}
}

var (
	start = route.Coordinates{Latitude: "37.7752", Longitude: "-122.4183"}
	end   = route.Coordinates{Latitude: "37.7972", Longitude: "-122.4533"}
)

func TestFetchQueriesBothEndpoints(t *testing.T) {
	var priceQuery, timeQuery string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/price":
			priceQuery = r.URL.RawQuery
			w.Write([]byte(`{"prices":[{"localized_display_name":"UberX","estimate":"$13-17","duration":540}]}`))
		case "/time":
			timeQuery = r.URL.RawQuery
			w.Write([]byte(`{"times":[{"localized_display_name":"UberX","estimate":300}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	set, err := newTestClient(srv.URL).Fetch(context.Background(), start, end)
	require.NoError(t, err)

	// price needs both endpoints, time only the start
	assert.Contains(t, priceQuery, "start_latitude=37.7752")
	assert.Contains(t, priceQuery, "end_longitude=-122.4533")
	assert.Contains(t, priceQuery, "server_token=test-token")
	assert.Contains(t, timeQuery, "start_latitude=37.7752")
	assert.NotContains(t, timeQuery, "end_latitude")

	require.Len(t, set.Prices, 1)
	require.Len(t, set.Times, 1)
}

func TestFetchAttachesParsedDurations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/price":
			w.Write([]byte(`{"prices":[{"localized_display_name":"UberX","estimate":"$13-17","duration":4080}]}`))
		case "/time":
			w.Write([]byte(`{"times":[{"localized_display_name":"UberX","estimate":540}]}`))
		}
	}))
	defer srv.Close()

	set, err := newTestClient(srv.URL).Fetch(context.Background(), start, end)
	require.NoError(t, err)

	price := set.Prices[0]
	assert.Equal(t, "UberX", price.DisplayName)
	assert.Equal(t, "1h 8m", price.Fields["parsedArrivalTime"])
	// the numeric source field survives unmutated
	assert.Equal(t, float64(4080), price.Fields["duration"])
	// the provider's own price estimate string is passed through
	assert.Equal(t, "$13-17", price.Fields["estimate"])

	tm := set.Times[0]
	assert.Equal(t, "9m", tm.Fields["parsedDuration"])
	assert.Equal(t, float64(540), tm.Fields["estimate"])
}

func TestFetchSkipsParsedFieldWithoutNumericSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/price":
			w.Write([]byte(`{"prices":[{"localized_display_name":"TAXI","estimate":"Metered"}]}`))
		case "/time":
			w.Write([]byte(`{"times":[{"localized_display_name":"TAXI","estimate":"soon"}]}`))
		}
	}))
	defer srv.Close()

	set, err := newTestClient(srv.URL).Fetch(context.Background(), start, end)
	require.NoError(t, err)

	assert.NotContains(t, set.Prices[0].Fields, "parsedArrivalTime")
	assert.NotContains(t, set.Times[0].Fields, "parsedDuration")
}

func TestFetchFailsWhenOneSideErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/price":
			http.Error(w, "upstream unavailable", http.StatusInternalServerError)
		case "/time":
			w.Write([]byte(`{"times":[{"localized_display_name":"UberX","estimate":300}]}`))
		}
	}))
	defer srv.Close()

	set, err := newTestClient(srv.URL).Fetch(context.Background(), start, end)

	assert.Nil(t, set)
	require.Error(t, err)
	assert.ErrorIs(t, err, route.ErrEstimateProvider)
	assert.Contains(t, err.Error(), "price estimate")
}

func TestFetchRejectsRecordWithoutDisplayName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/price":
			w.Write([]byte(`{"prices":[{"estimate":"$5","duration":120}]}`))
		case "/time":
			w.Write([]byte(`{"times":[]}`))
		}
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Fetch(context.Background(), start, end)

	require.Error(t, err)
	assert.ErrorIs(t, err, route.ErrEstimateProvider)
	assert.Contains(t, err.Error(), "localized_display_name")
}
