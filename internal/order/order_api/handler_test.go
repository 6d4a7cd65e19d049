package order_api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"airport-booking/internal/auth"
	"airport-booking/internal/logger"
	"airport-booking/internal/models"
	"airport-booking/internal/order"
	"airport-booking/internal/order/order_api"
	"airport-booking/internal/order/qr"
)

type MockDBLayer struct {
	mock.Mock
}

func (m *MockDBLayer) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockDBLayer) ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockDBLayer) CreateOrderWithTickets(ctx context.Context, o models.Order, tickets []models.Ticket) error {
	args := m.Called(ctx, o, tickets)
	return args.Error(0)
}

func (m *MockDBLayer) GetFlightWithAirplane(ctx context.Context, flightID string) (*models.Flight, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flight), args.Error(1)
}

func (m *MockDBLayer) SeatTaken(ctx context.Context, flightID string, row, seat int) (bool, error) {
	args := m.Called(ctx, flightID, row, seat)
	return args.Bool(0), args.Error(1)
}

type noopPublisher struct{}

func (noopPublisher) PublishOrderCreated(models.Order) error { return nil }

func newTestRouter(db *MockDBLayer) chi.Router {
	svc := order.NewOrderService(db, noopPublisher{}, qr.NewGenerator("test-secret"))
	handler := order_api.NewHandler(svc, logger.NewLogger())

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func authed(req *http.Request, userID string) *http.Request {
	ctx := auth.WithIdentity(req.Context(), auth.Identity{UserID: userID})
	return req.WithContext(ctx)
}

func testFlight(rows, seats int) *models.Flight {
	return &models.Flight{
		ID:         "flight-1",
		AirplaneID: "plane-1",
		Airplane:   &models.Airplane{ID: "plane-1", Rows: rows, SeatsInRow: seats},
	}
}

func TestPlaceOrder_RequiresAuthentication(t *testing.T) {
	router := newTestRouter(new(MockDBLayer))

	body := bytes.NewBufferString(`{"tickets":[{"row":1,"seat":1,"flight":"flight-1"}]}`)
	req := httptest.NewRequest(http.MethodPost, "/orders", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPlaceOrder_InvalidBody(t *testing.T) {
	router := newTestRouter(new(MockDBLayer))

	req := authed(httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString("{not json")), "user-1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlaceOrder_Created(t *testing.T) {
	db := new(MockDBLayer)
	db.On("GetFlightWithAirplane", mock.Anything, "flight-1").Return(testFlight(10, 6), nil)
	db.On("SeatTaken", mock.Anything, "flight-1", 1, 1).Return(false, nil)
	db.On("CreateOrderWithTickets", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	router := newTestRouter(db)

	body := bytes.NewBufferString(`{"tickets":[{"row":1,"seat":1,"flight":"flight-1"}]}`)
	req := authed(httptest.NewRequest(http.MethodPost, "/orders", body), "user-1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.OrderResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "user-1", resp.UserID)
	require.Len(t, resp.Tickets, 1)
	assert.Equal(t, "flight-1", resp.Tickets[0].FlightID)
}

func TestPlaceOrder_ValidationBodyIsFieldKeyed(t *testing.T) {
	db := new(MockDBLayer)
	db.On("GetFlightWithAirplane", mock.Anything, "flight-1").Return(testFlight(10, 6), nil)

	router := newTestRouter(db)

	body := bytes.NewBufferString(`{"tickets":[{"row":99,"seat":1,"flight":"flight-1"}]}`)
	req := authed(httptest.NewRequest(http.MethodPost, "/orders", body), "user-1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var fields map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&fields))
	assert.Equal(t, "row number must be in available range: (1, rows): (1, 10)", fields["row"])
}

func TestPlaceOrder_ConflictStatus(t *testing.T) {
	db := new(MockDBLayer)
	db.On("GetFlightWithAirplane", mock.Anything, "flight-1").Return(testFlight(10, 6), nil)
	db.On("SeatTaken", mock.Anything, "flight-1", 1, 1).Return(true, nil)

	router := newTestRouter(db)

	body := bytes.NewBufferString(`{"tickets":[{"row":1,"seat":1,"flight":"flight-1"}]}`)
	req := authed(httptest.NewRequest(http.MethodPost, "/orders", body), "user-1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&payload))
	assert.Contains(t, payload["detail"], "already")
}

func TestGetOrder_NotFoundForNonOwner(t *testing.T) {
	db := new(MockDBLayer)
	db.On("GetOrderByID", mock.Anything, "order-1").Return(&models.Order{
		ID:        "order-1",
		UserID:    "user-1",
		CreatedAt: time.Now().UTC(),
	}, nil)

	router := newTestRouter(db)

	req := authed(httptest.NewRequest(http.MethodGet, "/orders/order-1", nil), "someone-else")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListOrders_OwnerScoped(t *testing.T) {
	db := new(MockDBLayer)
	db.On("ListOrdersByUser", mock.Anything, "user-1").Return([]models.Order{
		{ID: "order-1", UserID: "user-1"},
	}, nil)

	router := newTestRouter(db)

	req := authed(httptest.NewRequest(http.MethodGet, "/orders", nil), "user-1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []models.OrderResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "order-1", resp[0].OrderID)
}
