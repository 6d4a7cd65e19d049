package flights_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"airport-booking/internal/apperr"
	"airport-booking/internal/flights"
	"airport-booking/internal/flights/db"
	"airport-booking/internal/models"
)

type MockDBLayer struct {
	mock.Mock
}

func (m *MockDBLayer) CreateRoute(ctx context.Context, route models.Route) error {
	args := m.Called(ctx, route)
	return args.Error(0)
}

func (m *MockDBLayer) GetRouteByID(ctx context.Context, id string) (*models.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Route), args.Error(1)
}

func (m *MockDBLayer) ListRoutes(ctx context.Context, filter db.RouteFilter) ([]models.Route, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Route), args.Error(1)
}

func (m *MockDBLayer) DeleteRoute(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDBLayer) CreateFlight(ctx context.Context, flight models.Flight, crewIDs []string) error {
	args := m.Called(ctx, flight, crewIDs)
	return args.Error(0)
}

func (m *MockDBLayer) GetFlightByID(ctx context.Context, id string) (*models.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flight), args.Error(1)
}

func (m *MockDBLayer) ListFlights(ctx context.Context, filter db.FlightFilter) ([]models.Flight, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flight), args.Error(1)
}

func (m *MockDBLayer) SetFlightCrew(ctx context.Context, flightID string, crewIDs []string) error {
	args := m.Called(ctx, flightID, crewIDs)
	return args.Error(0)
}

func (m *MockDBLayer) DeleteFlight(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDBLayer) AirportExists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockDBLayer) AirplaneExists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockDBLayer) RouteExists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockDBLayer) CrewExists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func TestCreateRoute_SelfLoopRejected(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := flights.NewService(mockDB)

	_, err := svc.CreateRoute(context.Background(), models.RouteRequest{
		SourceID:      "airport-1",
		DestinationID: "airport-1",
		Distance:      100,
	})

	assert.Error(t, err)
	var vErr *apperr.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "source")
	assert.Contains(t, vErr.Fields, "destination")
	mockDB.AssertNotCalled(t, "CreateRoute", mock.Anything, mock.Anything)
}

func TestCreateRoute_NegativeDistance(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := flights.NewService(mockDB)

	_, err := svc.CreateRoute(context.Background(), models.RouteRequest{
		SourceID:      "airport-1",
		DestinationID: "airport-2",
		Distance:      -5,
	})

	var vErr *apperr.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "distance")
}

func TestCreateRoute_MissingAirport(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := flights.NewService(mockDB)

	mockDB.On("AirportExists", mock.Anything, "airport-1").Return(true, nil)
	mockDB.On("AirportExists", mock.Anything, "airport-2").Return(false, nil)

	_, err := svc.CreateRoute(context.Background(), models.RouteRequest{
		SourceID:      "airport-1",
		DestinationID: "airport-2",
		Distance:      100,
	})

	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateRoute_Success(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := flights.NewService(mockDB)

	mockDB.On("AirportExists", mock.Anything, mock.Anything).Return(true, nil)
	mockDB.On("CreateRoute", mock.Anything, mock.Anything).Return(nil)

	route, err := svc.CreateRoute(context.Background(), models.RouteRequest{
		SourceID:      "airport-1",
		DestinationID: "airport-2",
		Distance:      420,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, route.ID)
	assert.Equal(t, 420, route.Distance)
	mockDB.AssertExpectations(t)
}

func TestCreateFlight_DepartureNotBeforeArrival(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := flights.NewService(mockDB)

	departure := time.Now().Add(26 * time.Hour)
	arrival := time.Now().Add(24 * time.Hour)

	_, err := svc.CreateFlight(context.Background(), models.FlightRequest{
		RouteID:       "route-1",
		AirplaneID:    "plane-1",
		DepartureTime: departure,
		ArrivalTime:   arrival,
	})

	var vErr *apperr.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "departure_time")
	mockDB.AssertNotCalled(t, "CreateFlight", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateFlight_UnknownCrewMember(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := flights.NewService(mockDB)

	mockDB.On("RouteExists", mock.Anything, "route-1").Return(true, nil)
	mockDB.On("AirplaneExists", mock.Anything, "plane-1").Return(true, nil)
	mockDB.On("CrewExists", mock.Anything, "ghost").Return(false, nil)

	_, err := svc.CreateFlight(context.Background(), models.FlightRequest{
		RouteID:       "route-1",
		AirplaneID:    "plane-1",
		DepartureTime: time.Now().Add(24 * time.Hour),
		ArrivalTime:   time.Now().Add(26 * time.Hour),
		CrewIDs:       []string{"ghost"},
	})

	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateFlight_Success(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := flights.NewService(mockDB)

	mockDB.On("RouteExists", mock.Anything, "route-1").Return(true, nil)
	mockDB.On("AirplaneExists", mock.Anything, "plane-1").Return(true, nil)
	mockDB.On("CrewExists", mock.Anything, "crew-1").Return(true, nil)
	mockDB.On("CreateFlight", mock.Anything, mock.Anything, []string{"crew-1"}).Return(nil)

	flight, err := svc.CreateFlight(context.Background(), models.FlightRequest{
		RouteID:       "route-1",
		AirplaneID:    "plane-1",
		DepartureTime: time.Now().Add(24 * time.Hour),
		ArrivalTime:   time.Now().Add(26 * time.Hour),
		CrewIDs:       []string{"crew-1"},
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, flight.ID)
	mockDB.AssertExpectations(t)
}

func TestSetCrew_FlightMissing(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := flights.NewService(mockDB)

	mockDB.On("GetFlightByID", mock.Anything, "missing").Return(nil, apperr.NewNotFound("flight", "missing"))

	err := svc.SetCrew(context.Background(), "missing", models.FlightCrewRequest{CrewIDs: []string{"crew-1"}})
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteRoute_Missing(t *testing.T) {
	mockDB := new(MockDBLayer)
	svc := flights.NewService(mockDB)

	mockDB.On("RouteExists", mock.Anything, "missing").Return(false, nil)

	err := svc.DeleteRoute(context.Background(), "missing")
	assert.True(t, apperr.IsNotFound(err))
	mockDB.AssertNotCalled(t, "DeleteRoute", mock.Anything, mock.Anything)
}
