package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"airport-booking/internal/apperr"
	"airport-booking/internal/models"
)

type DBLayer interface {
	GetOrderByID(ctx context.Context, id string) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error)
	CreateOrderWithTickets(ctx context.Context, order models.Order, tickets []models.Ticket) error
	GetFlightWithAirplane(ctx context.Context, flightID string) (*models.Flight, error)
	SeatTaken(ctx context.Context, flightID string, row, seat int) (bool, error)
}

type EventPublisher interface {
	PublishOrderCreated(order models.Order) error
}

type QRIssuer interface {
	GenerateEncryptedQR(ticket models.Ticket) ([]byte, error)
}

// OrderService is the allocation engine: it validates every requested
// seat against the flight's airplane layout and against committed
// tickets, then persists the order and all its tickets as one atomic
// unit.
type OrderService struct {
	DB    DBLayer
	Kafka EventPublisher
	QR    QRIssuer
}

func NewOrderService(db DBLayer, kafka EventPublisher, qr QRIssuer) *OrderService {
	return &OrderService{DB: db, Kafka: kafka, QR: qr}
}

type seatKey struct {
	flightID string
	row      int
	seat     int
}

// PlaceOrder runs the full allocation workflow. All validation happens
// before any write; the storage-level unique index on (flight, row, seat)
// remains the final arbiter under concurrent submissions.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, req models.OrderRequest) (*models.OrderResponse, error) {
	if len(req.Tickets) == 0 {
		return nil, apperr.NewValidation("tickets", "order must contain at least one ticket")
	}

	flightCache := make(map[string]*models.Flight)
	requested := make(map[seatKey]bool)

	for _, spec := range req.Tickets {
		if spec.FlightID == "" {
			return nil, apperr.NewValidation("flight", "flight reference is required")
		}

		flight, ok := flightCache[spec.FlightID]
		if !ok {
			var err error
			flight, err = s.DB.GetFlightWithAirplane(ctx, spec.FlightID)
			if err != nil {
				return nil, apperr.NewNotFound("flight", spec.FlightID)
			}
			flightCache[spec.FlightID] = flight
		}

		airplane := flight.Airplane
		if spec.Row < 1 || spec.Row > airplane.Rows {
			return nil, apperr.NewValidation("row", fmt.Sprintf(
				"row number must be in available range: (1, rows): (1, %d)", airplane.Rows))
		}
		if spec.Seat < 1 || spec.Seat > airplane.SeatsInRow {
			return nil, apperr.NewValidation("seat", fmt.Sprintf(
				"seat number must be in available range: (1, seats_in_row): (1, %d)", airplane.SeatsInRow))
		}

		key := seatKey{flightID: spec.FlightID, row: spec.Row, seat: spec.Seat}
		if requested[key] {
			return nil, apperr.NewConflict("ticket", fmt.Sprintf(
				"seat (%d, %d) requested twice for flight %s", spec.Row, spec.Seat, spec.FlightID))
		}
		requested[key] = true

		taken, err := s.DB.SeatTaken(ctx, spec.FlightID, spec.Row, spec.Seat)
		if err != nil {
			return nil, fmt.Errorf("failed to check seat (%d, %d) on flight %s: %w",
				spec.Row, spec.Seat, spec.FlightID, err)
		}
		if taken {
			return nil, apperr.NewConflict("ticket", fmt.Sprintf(
				"seat (%d, %d) on flight %s is already booked", spec.Row, spec.Seat, spec.FlightID))
		}
	}

	newOrder := models.Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	tickets := make([]models.Ticket, len(req.Tickets))
	for i, spec := range req.Tickets {
		ticket := models.Ticket{
			ID:       uuid.NewString(),
			Row:      spec.Row,
			Seat:     spec.Seat,
			FlightID: spec.FlightID,
			OrderID:  newOrder.ID,
			IssuedAt: newOrder.CreatedAt,
		}

		qrBytes, err := s.QR.GenerateEncryptedQR(ticket)
		if err != nil {
			return nil, fmt.Errorf("failed to generate QR for ticket: %w", err)
		}
		ticket.QRCode = qrBytes
		tickets[i] = ticket
	}

	if err := s.DB.CreateOrderWithTickets(ctx, newOrder, tickets); err != nil {
		// A concurrent order may have won the seat between the pre-check
		// and the commit; surface that as a conflict, not a silent loss.
		return nil, apperr.FromDB(err, "ticket")
	}

	newOrder.Tickets = tickets
	if err := s.Kafka.PublishOrderCreated(newOrder); err != nil {
		fmt.Printf("Kafka publish error (order created): %v\n", err)
	}

	return buildResponse(newOrder), nil
}

// GetOrder returns an order only to its owner. Anyone else gets the same
// not-found as a nonexistent order.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID string) (*models.OrderResponse, error) {
	orderData, err := s.DB.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, apperr.NewNotFound("order", orderID)
	}
	if orderData.UserID != userID {
		return nil, apperr.NewNotFound("order", orderID)
	}
	return buildResponse(*orderData), nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]models.OrderResponse, error) {
	orders, err := s.DB.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for user %s: %w", userID, err)
	}

	responses := make([]models.OrderResponse, len(orders))
	for i := range orders {
		responses[i] = *buildResponse(orders[i])
	}
	return responses, nil
}

func buildResponse(orderData models.Order) *models.OrderResponse {
	views := make([]models.TicketView, len(orderData.Tickets))
	for i, ticket := range orderData.Tickets {
		views[i] = models.TicketView{
			ID:       ticket.ID,
			Row:      ticket.Row,
			Seat:     ticket.Seat,
			FlightID: ticket.FlightID,
		}
	}
	return &models.OrderResponse{
		OrderID:   orderData.ID,
		UserID:    orderData.UserID,
		CreatedAt: orderData.CreatedAt,
		Tickets:   views,
	}
}
