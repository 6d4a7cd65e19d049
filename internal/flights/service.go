package flights

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"airport-booking/internal/apperr"
	"airport-booking/internal/flights/db"
	"airport-booking/internal/models"
)

type DBLayer interface {
	CreateRoute(ctx context.Context, route models.Route) error
	GetRouteByID(ctx context.Context, id string) (*models.Route, error)
	ListRoutes(ctx context.Context, filter db.RouteFilter) ([]models.Route, error)
	DeleteRoute(ctx context.Context, id string) error

	CreateFlight(ctx context.Context, flight models.Flight, crewIDs []string) error
	GetFlightByID(ctx context.Context, id string) (*models.Flight, error)
	ListFlights(ctx context.Context, filter db.FlightFilter) ([]models.Flight, error)
	SetFlightCrew(ctx context.Context, flightID string, crewIDs []string) error
	DeleteFlight(ctx context.Context, id string) error

	AirportExists(ctx context.Context, id string) (bool, error)
	AirplaneExists(ctx context.Context, id string) (bool, error)
	RouteExists(ctx context.Context, id string) (bool, error)
	CrewExists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	DB DBLayer
}

func NewService(db DBLayer) *Service {
	return &Service{DB: db}
}

// ---------------- ROUTES ----------------

func (s *Service) CreateRoute(ctx context.Context, req models.RouteRequest) (*models.Route, error) {
	fields := map[string]string{}
	if req.SourceID == "" {
		fields["source"] = "source airport reference is required"
	}
	if req.DestinationID == "" {
		fields["destination"] = "destination airport reference is required"
	}
	if req.Distance < 0 {
		fields["distance"] = "distance must not be negative"
	}
	if req.SourceID != "" && req.SourceID == req.DestinationID {
		fields["source"] = "source and destination cannot be the same"
		fields["destination"] = "source and destination cannot be the same"
	}
	if len(fields) > 0 {
		return nil, &apperr.ValidationError{Fields: fields}
	}

	if ok, err := s.DB.AirportExists(ctx, req.SourceID); err != nil || !ok {
		return nil, apperr.NewNotFound("airport", req.SourceID)
	}
	if ok, err := s.DB.AirportExists(ctx, req.DestinationID); err != nil || !ok {
		return nil, apperr.NewNotFound("airport", req.DestinationID)
	}

	route := models.Route{
		ID:            uuid.NewString(),
		SourceID:      req.SourceID,
		DestinationID: req.DestinationID,
		Distance:      req.Distance,
	}
	if err := s.DB.CreateRoute(ctx, route); err != nil {
		return nil, apperr.FromDB(err, "route")
	}
	return &route, nil
}

func (s *Service) ListRoutes(ctx context.Context, filter db.RouteFilter) ([]models.Route, error) {
	return s.DB.ListRoutes(ctx, filter)
}

func (s *Service) GetRoute(ctx context.Context, id string) (*models.Route, error) {
	route, err := s.DB.GetRouteByID(ctx, id)
	if err != nil {
		return nil, apperr.NewNotFound("route", id)
	}
	return route, nil
}

func (s *Service) DeleteRoute(ctx context.Context, id string) error {
	if ok, err := s.DB.RouteExists(ctx, id); err != nil || !ok {
		return apperr.NewNotFound("route", id)
	}
	if err := s.DB.DeleteRoute(ctx, id); err != nil {
		return fmt.Errorf("failed to delete route %s: %w", id, err)
	}
	return nil
}

// ---------------- FLIGHTS ----------------

func (s *Service) CreateFlight(ctx context.Context, req models.FlightRequest) (*models.Flight, error) {
	fields := map[string]string{}
	if req.RouteID == "" {
		fields["route"] = "route reference is required"
	}
	if req.AirplaneID == "" {
		fields["airplane"] = "airplane reference is required"
	}
	if req.DepartureTime.IsZero() {
		fields["departure_time"] = "departure_time is required"
	}
	if req.ArrivalTime.IsZero() {
		fields["arrival_time"] = "arrival_time is required"
	}
	if !req.DepartureTime.IsZero() && !req.ArrivalTime.IsZero() && !req.DepartureTime.Before(req.ArrivalTime) {
		fields["departure_time"] = "departure_time must be before arrival_time"
	}
	if len(fields) > 0 {
		return nil, &apperr.ValidationError{Fields: fields}
	}

	if ok, err := s.DB.RouteExists(ctx, req.RouteID); err != nil || !ok {
		return nil, apperr.NewNotFound("route", req.RouteID)
	}
	if ok, err := s.DB.AirplaneExists(ctx, req.AirplaneID); err != nil || !ok {
		return nil, apperr.NewNotFound("airplane", req.AirplaneID)
	}
	for _, crewID := range req.CrewIDs {
		if ok, err := s.DB.CrewExists(ctx, crewID); err != nil || !ok {
			return nil, apperr.NewNotFound("crew", crewID)
		}
	}

	flight := models.Flight{
		ID:            uuid.NewString(),
		RouteID:       req.RouteID,
		AirplaneID:    req.AirplaneID,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
	}
	if err := s.DB.CreateFlight(ctx, flight, req.CrewIDs); err != nil {
		return nil, apperr.FromDB(err, "flight")
	}
	return &flight, nil
}

func (s *Service) ListFlights(ctx context.Context, filter db.FlightFilter) ([]models.Flight, error) {
	return s.DB.ListFlights(ctx, filter)
}

func (s *Service) GetFlight(ctx context.Context, id string) (*models.Flight, error) {
	flight, err := s.DB.GetFlightByID(ctx, id)
	if err != nil {
		return nil, apperr.NewNotFound("flight", id)
	}
	return flight, nil
}

// SetCrew replaces a flight's crew assignment; assignment may change over
// the flight's lifetime.
func (s *Service) SetCrew(ctx context.Context, flightID string, req models.FlightCrewRequest) error {
	if _, err := s.DB.GetFlightByID(ctx, flightID); err != nil {
		return apperr.NewNotFound("flight", flightID)
	}
	for _, crewID := range req.CrewIDs {
		if ok, err := s.DB.CrewExists(ctx, crewID); err != nil || !ok {
			return apperr.NewNotFound("crew", crewID)
		}
	}

	if err := s.DB.SetFlightCrew(ctx, flightID, req.CrewIDs); err != nil {
		return fmt.Errorf("failed to assign crew to flight %s: %w", flightID, err)
	}
	return nil
}

func (s *Service) DeleteFlight(ctx context.Context, id string) error {
	if _, err := s.DB.GetFlightByID(ctx, id); err != nil {
		return apperr.NewNotFound("flight", id)
	}
	if err := s.DB.DeleteFlight(ctx, id); err != nil {
		return fmt.Errorf("failed to delete flight %s: %w", id, err)
	}
	return nil
}
