package flight_api_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"

	"airport-booking/internal/auth"
	"airport-booking/internal/flights"
	"airport-booking/internal/flights/db"
	"airport-booking/internal/flights/flight_api"
	"airport-booking/internal/logger"
	"airport-booking/internal/models"
)

type testEnv struct {
	Router     chi.Router
	Bun        *bun.DB
	SourceID   string
	RouteID    string
	AirplaneID string
}

func newTestEnv(t *testing.T) testEnv {
	sqldb, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqldb.Close() })

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	models.RegisterModels(bunDB)

	ctx := context.Background()
	for _, model := range []interface{}{
		(*models.Airport)(nil),
		(*models.AirplaneType)(nil),
		(*models.Airplane)(nil),
		(*models.Route)(nil),
		(*models.Crew)(nil),
		(*models.Flight)(nil),
		(*models.FlightCrew)(nil),
		(*models.Order)(nil),
		(*models.Ticket)(nil),
	} {
		_, err := bunDB.NewCreateTable().Model(model).Exec(ctx)
		require.NoError(t, err)
	}

	source := models.Airport{ID: uuid.NewString(), Name: "Heathrow"}
	destination := models.Airport{ID: uuid.NewString(), Name: "Schiphol"}
	_, err = bunDB.NewInsert().Model(&source).Exec(ctx)
	require.NoError(t, err)
	_, err = bunDB.NewInsert().Model(&destination).Exec(ctx)
	require.NoError(t, err)

	airplaneType := models.AirplaneType{ID: uuid.NewString(), Name: "Narrow-body"}
	_, err = bunDB.NewInsert().Model(&airplaneType).Exec(ctx)
	require.NoError(t, err)

	airplane := models.Airplane{
		ID:             uuid.NewString(),
		Name:           "Blue One",
		Rows:           2,
		SeatsInRow:     3,
		AirplaneTypeID: airplaneType.ID,
	}
	_, err = bunDB.NewInsert().Model(&airplane).Exec(ctx)
	require.NoError(t, err)

	route := models.Route{
		ID:            uuid.NewString(),
		SourceID:      source.ID,
		DestinationID: destination.ID,
		Distance:      370,
	}
	_, err = bunDB.NewInsert().Model(&route).Exec(ctx)
	require.NoError(t, err)

	svc := flights.NewService(&db.DB{Bun: bunDB})
	handler := flight_api.NewHandler(svc, logger.NewLogger())

	r := chi.NewRouter()
	handler.RegisterRoutes(r, auth.RequireRole("admin"))

	return testEnv{
		Router:     r,
		Bun:        bunDB,
		SourceID:   source.ID,
		RouteID:    route.ID,
		AirplaneID: airplane.ID,
	}
}

func as(req *http.Request, roles ...string) *http.Request {
	ctx := auth.WithIdentity(req.Context(), auth.Identity{UserID: "user-1", Roles: roles})
	return req.WithContext(ctx)
}

func TestCreateFlight_AdminOnly(t *testing.T) {
	env := newTestEnv(t)

	payload, err := json.Marshal(models.FlightRequest{
		RouteID:       env.RouteID,
		AirplaneID:    env.AirplaneID,
		DepartureTime: time.Now().Add(24 * time.Hour),
		ArrivalTime:   time.Now().Add(26 * time.Hour),
	})
	require.NoError(t, err)

	req := as(httptest.NewRequest(http.MethodPost, "/flights", bytes.NewReader(payload)))
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = as(httptest.NewRequest(http.MethodPost, "/flights", bytes.NewReader(payload)), "admin")
	rec = httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var flight models.Flight
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&flight))
	assert.NotEmpty(t, flight.ID)
}

func TestCreateRoute_SelfLoopIs400(t *testing.T) {
	env := newTestEnv(t)

	body := bytes.NewBufferString(fmt.Sprintf(
		`{"source_id":%q,"destination_id":%q,"distance":100}`, env.SourceID, env.SourceID))
	req := as(httptest.NewRequest(http.MethodPost, "/routes", body), "admin")
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var fields map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&fields))
	assert.Contains(t, fields, "source")
	assert.Contains(t, fields, "destination")
}

func TestListFlights_CarriesFreeSeats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	flight := models.Flight{
		ID:            uuid.NewString(),
		RouteID:       env.RouteID,
		AirplaneID:    env.AirplaneID,
		DepartureTime: time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
	}
	_, err := env.Bun.NewInsert().Model(&flight).Exec(ctx)
	require.NoError(t, err)

	testOrder := models.Order{ID: uuid.NewString(), UserID: "user-1", CreatedAt: time.Now().UTC()}
	_, err = env.Bun.NewInsert().Model(&testOrder).Exec(ctx)
	require.NoError(t, err)
	ticket := models.Ticket{ID: uuid.NewString(), Row: 1, Seat: 1, FlightID: flight.ID, OrderID: testOrder.ID}
	_, err = env.Bun.NewInsert().Model(&ticket).Exec(ctx)
	require.NoError(t, err)

	req := as(httptest.NewRequest(http.MethodGet, "/flights", nil))
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var views []models.FlightListView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&views))
	require.Len(t, views, 1)
	assert.Equal(t, "Heathrow", views[0].Source)
	assert.Equal(t, "Schiphol", views[0].Destination)
	assert.Equal(t, 5, views[0].FreeSeats) // 2x3 layout, one seat sold
}

func TestListFlights_DateFilterParams(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	flight := models.Flight{
		ID:            uuid.NewString(),
		RouteID:       env.RouteID,
		AirplaneID:    env.AirplaneID,
		DepartureTime: time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
	}
	_, err := env.Bun.NewInsert().Model(&flight).Exec(ctx)
	require.NoError(t, err)

	req := as(httptest.NewRequest(http.MethodGet, "/flights?departure_time=2026-09-01", nil))
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var views []models.FlightListView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&views))
	assert.Len(t, views, 1)

	req = as(httptest.NewRequest(http.MethodGet, "/flights?departure_time=2026-09-02", nil))
	rec = httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	views = nil
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&views))
	assert.Len(t, views, 0)

	req = as(httptest.NewRequest(http.MethodGet, "/flights?departure_time=not-a-date", nil))
	rec = httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
