package service

import (
	"context"
	"testing"

	"ride-estimates/internal/domain/route"
	"ride-estimates/internal/general/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ----- collaborator mocks -----

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Forward(ctx context.Context, address string) (route.Coordinates, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(route.Coordinates), args.Error(1)
}

func (m *MockGeocoder) Reverse(ctx context.Context, coords route.Coordinates) (string, error) {
	args := m.Called(ctx, coords)
	return args.String(0), args.Error(1)
}

type MockEstimateClient struct {
	mock.Mock
}

func (m *MockEstimateClient) Fetch(ctx context.Context, start, end route.Coordinates) (*route.EstimateSet, error) {
	args := m.Called(ctx, start, end)
	if set := args.Get(0); set != nil {
		return set.(*route.EstimateSet), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockSink struct {
	mock.Mock
}

func (m *MockSink) Append(ctx context.Context, res *route.Result) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func newTestService(geo *MockGeocoder, est *MockEstimateClient, snk *MockSink) *workerService {
	return &workerService{
		logger:    logger.New("estimate-worker-test"),
		geocoder:  geo,
		estimates: est,
		sink:      snk,
	}
}

// ----- end-to-end pipeline scenarios -----

func TestProcessSuccess(t *testing.T) {
	geo := new(MockGeocoder)
	est := new(MockEstimateClient)
	snk := new(MockSink)
	svc := newTestService(geo, est, snk)

	startCoords := route.Coordinates{Latitude: "37.423", Longitude: "-122.084"}
	endCoords := route.Coordinates{Latitude: "37.331", Longitude: "-122.031"}

	geo.On("Forward", mock.Anything, "1600 Amphitheatre Parkway").Return(startCoords, nil)
	geo.On("Forward", mock.Anything, "1 Infinite Loop").Return(endCoords, nil)
	est.On("Fetch", mock.Anything, startCoords, endCoords).Return(&route.EstimateSet{
		Prices: []route.RawEstimate{raw("UberX", map[string]any{"estimate": "$22-29", "parsedArrivalTime": "45m"})},
		Times:  []route.RawEstimate{raw("UberX", map[string]any{"estimate": float64(300), "parsedDuration": "5m"})},
	}, nil)
	snk.On("Append", mock.Anything, mock.Anything).Return(nil)

	res := svc.Process(context.Background(),
		[]byte(`{"origin":"1600 Amphitheatre Parkway","destination":"1 Infinite Loop","uuid":"abc"}`))

	require.False(t, res.Failed())
	assert.Equal(t, "abc", res.UUID)

	// the original address text is kept, not the provider's normalized form
	require.NotNil(t, res.Start)
	assert.Equal(t, "1600 Amphitheatre Parkway", res.Start.Address)
	assert.Equal(t, startCoords, res.Start.Coordinates)

	require.Len(t, res.Estimates, 1)
	assert.Contains(t, res.Estimates[0].Fields, "price_estimate")
	assert.Contains(t, res.Estimates[0].Fields, "time_estimate")

	geo.AssertExpectations(t)
	est.AssertExpectations(t)
	snk.AssertExpectations(t)
}

func TestProcessMalformedMessage(t *testing.T) {
	geo := new(MockGeocoder)
	est := new(MockEstimateClient)
	snk := new(MockSink)
	svc := newTestService(geo, est, snk)

	snk.On("Append", mock.Anything, mock.Anything).Return(nil)

	res := svc.Process(context.Background(), []byte(`{not json at all`))

	assert.True(t, res.Failed())
	assert.Equal(t, route.UnknownRequestID, res.UUID)
	assert.Equal(t, "invalid input", res.Err)

	// the pipeline never touched the collaborators
	geo.AssertNotCalled(t, "Forward", mock.Anything, mock.Anything)
	est.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything)
	snk.AssertExpectations(t)
}

func TestProcessRecoversUUIDFromPartiallyValidMessage(t *testing.T) {
	geo := new(MockGeocoder)
	est := new(MockEstimateClient)
	snk := new(MockSink)
	svc := newTestService(geo, est, snk)

	snk.On("Append", mock.Anything, mock.Anything).Return(nil)

	// valid JSON, but origin is neither an address string nor a pair
	res := svc.Process(context.Background(), []byte(`{"origin":42,"destination":"1 Infinite Loop","uuid":"abc"}`))

	assert.True(t, res.Failed())
	assert.Equal(t, "abc", res.UUID)
}

func TestProcessGeocodeRejectionFailsRequest(t *testing.T) {
	geo := new(MockGeocoder)
	est := new(MockEstimateClient)
	snk := new(MockSink)
	svc := newTestService(geo, est, snk)

	geo.On("Forward", mock.Anything, "Apt 4B, 123 Main St").Return(route.Coordinates{}, route.ErrGeocode)
	geo.On("Forward", mock.Anything, "1 Infinite Loop").Return(route.Coordinates{Latitude: "1", Longitude: "2"}, nil)
	snk.On("Append", mock.Anything, mock.Anything).Return(nil)

	res := svc.Process(context.Background(),
		[]byte(`{"origin":"Apt 4B, 123 Main St","destination":"1 Infinite Loop","uuid":"xyz"}`))

	assert.True(t, res.Failed())
	assert.Equal(t, "xyz", res.UUID)
	assert.Equal(t, "invalid input", res.Err)

	// a failed resolution never reaches the estimate provider
	est.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything)
	snk.AssertExpectations(t)
}

func TestProcessEstimateFailureIsAllOrNothing(t *testing.T) {
	geo := new(MockGeocoder)
	est := new(MockEstimateClient)
	snk := new(MockSink)
	svc := newTestService(geo, est, snk)

	coords := route.Coordinates{Latitude: "1", Longitude: "2"}
	geo.On("Forward", mock.Anything, mock.Anything).Return(coords, nil)
	est.On("Fetch", mock.Anything, coords, coords).Return(nil, route.ErrEstimateProvider)

	var appended *route.Result
	snk.On("Append", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		appended = args.Get(1).(*route.Result)
	}).Return(nil)

	res := svc.Process(context.Background(), []byte(`{"origin":"A","destination":"B","uuid":"abc"}`))

	assert.True(t, res.Failed())
	assert.Empty(t, res.Estimates)

	// the sink saw the failure record, not a partial success
	require.NotNil(t, appended)
	assert.True(t, appended.Failed())
	assert.Equal(t, "abc", appended.UUID)
}

func TestProcessSurvivesSinkFailure(t *testing.T) {
	geo := new(MockGeocoder)
	est := new(MockEstimateClient)
	snk := new(MockSink)
	svc := newTestService(geo, est, snk)

	snk.On("Append", mock.Anything, mock.Anything).Return(route.ErrSinkWrite)

	// the secondary failure is logged only; Process must not panic or retry
	res := svc.Process(context.Background(), []byte(`not even json`))

	assert.True(t, res.Failed())
	snk.AssertNumberOfCalls(t, "Append", 1)
}
